// Package cli is the admin command-line client for the account service.
//
// Commands:
//
//	me                         show the caller's account
//	get <id>                   show any account (superuser)
//	update <id|me> [flags]     change fields; privilege flags need a superuser
//	delete <id>                delete an account (superuser)
//
// The access token comes from -token, ACCOUNTS_TOKEN or, on a terminal, a
// no-echo prompt.
package cli
