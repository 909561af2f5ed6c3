// Command vaulthelper drives a keyvault over a local bbolt database.
// It exists for manual testing and cross-checks; it reads the password
// from the KEYVAULT_PASSWORD environment variable so secrets stay out
// of argv.
package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	keyvault "github.com/quantumpurse/keyvault-go"
	"github.com/quantumpurse/keyvault-go/store/boltstore"
)

func main() {
	if len(os.Args) < 2 {
		fatal("usage: vaulthelper <init|import|export|new-account|accounts|recover|sign> [args]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	dbPath := os.Getenv("KEYVAULT_DB")
	if dbPath == "" {
		dbPath = "keyvault.db"
	}
	password := []byte(os.Getenv("KEYVAULT_PASSWORD"))
	if len(password) == 0 {
		fatal("KEYVAULT_PASSWORD is required")
	}

	db, err := boltstore.Open(dbPath)
	if err != nil {
		fatal("open store: %v", err)
	}
	defer db.Close()

	vault, err := keyvault.New(db, db)
	if err != nil {
		fatal("create vault: %v", err)
	}

	switch os.Args[1] {
	case "init":
		if err := vault.Init(ctx, password); err != nil {
			fatal("init: %v", err)
		}
		fmt.Println("ok")
	case "import":
		if len(os.Args) < 3 {
			fatal("usage: vaulthelper import <phrase>")
		}
		if err := vault.ImportPhrase(ctx, os.Args[2], password); err != nil {
			fatal("import: %v", err)
		}
		fmt.Println("ok")
	case "export":
		phrase, err := vault.ExportPhrase(ctx, password)
		if err != nil {
			fatal("export: %v", err)
		}
		fmt.Println(phrase)
	case "new-account":
		account, err := vault.GenerateAccount(ctx, password)
		if err != nil {
			fatal("new account: %v", err)
		}
		json.NewEncoder(os.Stdout).Encode(account)
	case "accounts":
		accounts, err := vault.Accounts(ctx)
		if err != nil {
			fatal("list accounts: %v", err)
		}
		json.NewEncoder(os.Stdout).Encode(accounts)
	case "recover":
		if len(os.Args) < 3 {
			fatal("usage: vaulthelper recover <count>")
		}
		count, err := strconv.ParseUint(os.Args[2], 10, 32)
		if err != nil {
			fatal("parse count: %v", err)
		}
		ids, err := vault.RecoverAccounts(ctx, password, uint32(count))
		if err != nil {
			fatal("recover: %v", err)
		}
		json.NewEncoder(os.Stdout).Encode(ids)
	case "sign":
		if len(os.Args) < 4 {
			fatal("usage: vaulthelper sign <public-identifier> <hex-message>")
		}
		message, err := hex.DecodeString(os.Args[3])
		if err != nil {
			fatal("parse message: %v", err)
		}
		sig, err := vault.Sign(ctx, password, os.Args[2], message)
		if err != nil {
			fatal("sign: %v", err)
		}
		fmt.Println(hex.EncodeToString(sig))
	default:
		fatal("unknown command: %s", os.Args[1])
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
