package service

import "github.com/alexanderramin/spelltree/internal/app"

// BuildService covers every use case that runs the tree engine.
type BuildService interface {
	app.BuildUseCase
	app.CompareUseCase
	app.ValidateTreeUseCase
}
