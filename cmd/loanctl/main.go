// loanctl is the operations CLI of the loan ledger: schema migrations and a
// small end-to-end demo flow against a running PostgreSQL.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
