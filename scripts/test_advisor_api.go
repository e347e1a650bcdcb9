package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Manual smoke test for the advisor API. Run the server first, then:
//
//	go run scripts/test_advisor_api.go
func main() {
	green := color.New(color.FgGreen, color.Bold)
	red := color.New(color.FgRed, color.Bold)
	cyan := color.New(color.FgCyan)

	cyan.Println("=== 1. List grants ===")
	mustGet("/knowledge/v1/grants")

	cyan.Println("=== 2. List forms ===")
	mustGet("/knowledge/v1/forms")

	cyan.Println("=== 3. Create session ===")
	var created struct {
		Data struct {
			Id string `json:"id"`
		} `json:"data"`
	}
	body := map[string]string{
		"grant":    "人材確保等支援助成金（雇用管理制度・雇用環境整備助成コース）",
		"form_key": "全般（様式を特定しない）",
	}
	if err := postJSON("/session/v1", body, &created); err != nil {
		red.Printf("create session failed: %v\n", err)
		os.Exit(1)
	}
	green.Printf("session id: %s\n", created.Data.Id)

	cyan.Println("=== 4. Send chat ===")
	chat := map[string]string{"message": "離職率の計算方法は？"}
	var reply json.RawMessage
	if err := postJSON("/session/v1/"+created.Data.Id+"/chat", chat, &reply); err != nil {
		red.Printf("chat failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(reply))

	cyan.Println("=== 5. Transcript ===")
	mustGet("/session/v1/" + created.Data.Id + "/transcript")

	green.Println("done")
}

func mustGet(path string) {
	res, err := http.Get(baseURL + path)
	if err != nil {
		color.Red("GET %s failed: %v", path, err)
		os.Exit(1)
	}
	defer res.Body.Close()

	var v json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&v); err != nil {
		color.Red("GET %s decode failed: %v", path, err)
		os.Exit(1)
	}
	pretty, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(pretty))
}

func postJSON(path string, body interface{}, out interface{}) error {
	payload, _ := json.Marshal(body)
	res, err := http.Post(baseURL+path, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
