package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ProductSummary is one available product with its ordered processes.
type ProductSummary struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Version   int              `json:"version"`
	Processes []ProcessSummary `json:"processes"`
}

// ProcessSummary is one product process with its selectable modules.
type ProcessSummary struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Stage   int             `json:"stage"`
	Modules []ModuleSummary `json:"modules"`
}

// ModuleSummary is one selectable process module.
type ModuleSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GetProducts handles GET /api/v1/products - lists the products currently
// offered by the catalogue.
func (s *Server) GetProducts(ctx echo.Context) error {
	products, err := s.catalogue.GetAvailableProducts(ctx.Request().Context())
	if err != nil {
		return renderError(ctx, err)
	}

	response := make([]ProductSummary, len(products))
	for i, product := range products {
		processes := make([]ProcessSummary, len(product.Processes))
		for j, process := range product.Processes {
			modules := make([]ModuleSummary, len(process.Modules))
			for k, module := range process.Modules {
				modules[k] = ModuleSummary{ID: module.ID.String(), Name: module.Name}
			}
			processes[j] = ProcessSummary{
				ID:      process.ID.String(),
				Name:    process.Name,
				Stage:   process.Stage,
				Modules: modules,
			}
		}
		response[i] = ProductSummary{
			ID:        product.ID.String(),
			Name:      product.Name,
			Version:   product.Version,
			Processes: processes,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
