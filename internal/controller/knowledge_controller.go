package controller

import (
	"fmt"
	"os"
	"path/filepath"

	"grant-advisor-be/internal/constant"
	"grant-advisor-be/internal/dto"
	"grant-advisor-be/internal/pkg/serverutils"
	"grant-advisor-be/pkg/knowledge"
	"grant-advisor-be/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// labelMaxHalfWidth matches the quick-ask button width in the client.
const labelMaxHalfWidth = 120

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
	Grants(ctx *fiber.Ctx) error
	Forms(ctx *fiber.Ctx) error
	FormItems(ctx *fiber.Ctx) error
	FormTemplate(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	knowledgeStore *knowledge.Store
	templatesDir   string
}

func NewKnowledgeController(knowledgeStore *knowledge.Store, templatesDir string) IKnowledgeController {
	return &knowledgeController{
		knowledgeStore: knowledgeStore,
		templatesDir:   templatesDir,
	}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/knowledge/v1")
	h.Get("grants", c.Grants)
	h.Get("forms", c.Forms)
	h.Get("forms/:key/items", c.FormItems)
	h.Get("forms/:key/template", c.FormTemplate)
}

func (c *knowledgeController) Grants(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success list grants", []string{constant.GrantName}))
}

// Forms lists the general option first, then every known form key.
func (c *knowledgeController) Forms(ctx *fiber.Ctx) error {
	keys := c.knowledgeStore.FormKeys()
	entries := make([]dto.FormListEntry, 0, len(keys)+1)
	entries = append(entries, dto.FormListEntry{
		Key:   constant.GeneralFormKey,
		Label: constant.GeneralFormKey,
	})
	for _, key := range keys {
		entries = append(entries, dto.FormListEntry{
			Key:   key,
			Label: utils.TruncateHalfWidth(key, labelMaxHalfWidth),
		})
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list forms", entries))
}

func (c *knowledgeController) FormItems(ctx *fiber.Ctx) error {
	key := ctx.Params("key")
	form, ok := c.knowledgeStore.Form(key)
	if !ok {
		return fmt.Errorf("unknown form key %q: %w", key, serverutils.ErrNotFound)
	}

	items := make([]dto.FormItemResponse, 0, len(form.Items))
	for _, item := range form.Items {
		items = append(items, dto.FormItemResponse{
			ItemID:      item.ItemID,
			Label:       item.Label,
			Display:     utils.TruncateHalfWidth(fmt.Sprintf("%s: %s", item.ItemID, item.Label), labelMaxHalfWidth),
			Instruction: item.Instruction,
		})
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list form items", items))
}

// FormTemplate serves the blank template PDF for a form, when one is
// bundled under the templates directory.
func (c *knowledgeController) FormTemplate(ctx *fiber.Ctx) error {
	key := ctx.Params("key")
	if _, ok := c.knowledgeStore.Form(key); !ok {
		return fmt.Errorf("unknown form key %q: %w", key, serverutils.ErrNotFound)
	}

	path := filepath.Join(c.templatesDir, key)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no template for form %q: %w", key, serverutils.ErrNotFound)
	}
	return ctx.SendFile(path)
}
