// This program is a command line client for a ledger node.
package main

import "github.com/ledgerlab/powchain/app/tooling/ledger/cmd"

func main() {
	cmd.Execute()
}
