// Minimal end‑to‑end integration test for the covbot status API.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
)

var baseURL = getenv("API_URL", "http://localhost:8080")

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	checkHealth()
	checkCarpools()
	checkLeaderboard()

	fmt.Println("✓ all endpoints passed")
}

func checkHealth() {
	var resp struct {
		Status string `json:"status"`
	}
	doJSON("/healthz", &resp)
	if resp.Status != "ok" {
		log.Fatalf("healthz: status %q", resp.Status)
	}
}

func checkCarpools() {
	var resp struct {
		Carpools []struct {
			ID      string `json:"id"`
			ShortID string `json:"short_id"`
			Owner   string `json:"owner"`
			Date    int64  `json:"date"`
		} `json:"carpools"`
	}
	doJSON("/v1/carpools", &resp)

	for _, c := range resp.Carpools {
		if c.ID == "" || c.Owner == "" || c.Date == 0 {
			log.Fatalf("carpools: incomplete entry %+v", c)
		}
	}
	fmt.Printf("carpools: %d live\n", len(resp.Carpools))
}

func checkLeaderboard() {
	var resp struct {
		Leaderboard []struct {
			Position int     `json:"position"`
			Owner    string  `json:"owner"`
			Score    float64 `json:"score"`
		} `json:"leaderboard"`
	}
	doJSON("/v1/leaderboard", &resp)

	for i, r := range resp.Leaderboard {
		if r.Position != i+1 {
			log.Fatalf("leaderboard: position %d at index %d", r.Position, i)
		}
		if i > 0 && r.Score > resp.Leaderboard[i-1].Score {
			log.Fatalf("leaderboard: not sorted at position %d", r.Position)
		}
	}
	fmt.Printf("leaderboard: %d ranked\n", len(resp.Leaderboard))
}

func doJSON(path string, out any) {
	resp, err := http.Get(baseURL + path)
	if err != nil {
		log.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("GET %s: status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Fatalf("GET %s: decode: %v", path, err)
	}
}
