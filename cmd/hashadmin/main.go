package main

import (
	"fmt"
	"log"
	"os"

	"bookhaven_back_end/internal/utils"
)

// hashadmin prints the Argon2id hash to put in ADMIN_PASSWORD_HASH.
//
//	go run ./cmd/hashadmin <password>
func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: hashadmin <password>")
	}

	hash, err := utils.HashPassword(os.Args[1])
	if err != nil {
		log.Fatal("hashing error:", err)
	}

	fmt.Println(hash)
}
