package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/thereidfleish/myace-sub000/internal/mockapi"
)

func main() {
	var addr string
	flag.StringVar(&addr, "addr", "", "Listen address (overrides env MOCKAPI_ADDR)")
	flag.Parse()

	_ = godotenv.Load()

	if addr == "" {
		addr = os.Getenv("MOCKAPI_ADDR")
	}
	if addr == "" {
		addr = ":8082"
	}

	srv := mockapi.New()
	if err := srv.ListenAndServe(addr); err != nil {
		log.Fatalf("mock API failed: %v", err)
	}
}
