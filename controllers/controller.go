// Package controllers holds the gin handlers. One Controller value carries
// the injected dependencies; routes wires its methods to paths.
package controllers

import (
	"backend/cart"
	"backend/checkout"
	"backend/recognize"
	"backend/store"
	"backend/utils"
)

type Controller struct {
	store      *store.Store
	carts      *cart.Manager
	orch       *checkout.Orchestrator
	recognizer *recognize.Client
	tokens     *utils.TokenIssuer
}

func New(s *store.Store, carts *cart.Manager, orch *checkout.Orchestrator, recognizer *recognize.Client, tokens *utils.TokenIssuer) *Controller {
	return &Controller{
		store:      s,
		carts:      carts,
		orch:       orch,
		recognizer: recognizer,
		tokens:     tokens,
	}
}
