package httpapi

import "github.com/dmitrijs2005/gophaccounts/internal/logging"

func nopLogger() logging.Logger { return logging.Nop{} }
