// Command hashpassword prints the bcrypt hash of the organiser password for ADMIN_PASSWORD_HASH.
//
//	go run ./cmd/hashpassword 'my-password'
package main

import (
	"fmt"
	"os"

	"github.com/Dosada05/soccer-cup/utils"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpassword <password>")
		os.Exit(2)
	}
	hash, err := utils.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
