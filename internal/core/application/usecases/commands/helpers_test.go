package commands_test

import (
	"testing"

	"workplans/internal/core/domain/model/catalog"
	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/workorder"
	"workplans/internal/core/domain/model/workplan"

	"github.com/stretchr/testify/require"
)

func testProduct() *catalog.Product {
	return &catalog.Product{
		ID:           kernel.NewUUID(),
		Name:         "Whole Genome Sequencing",
		Version:      2,
		Availability: true,
		Catalogue:    catalog.Catalogue{LIMSID: "SQSC", URL: "http://lims.example.com/jobs"},
		Processes: []catalog.Process{
			{
				ID:    kernel.NewUUID(),
				Name:  "QC",
				Stage: 0,
				Modules: []catalog.ProcessModule{
					{ID: kernel.NewUUID(), Name: "Quantification"},
				},
			},
			{
				ID:    kernel.NewUUID(),
				Name:  "Library Prep",
				Stage: 1,
			},
		},
	}
}

// testPlan builds a plan ready for dispatch: original set, product, project
// and locked set are all in place, no orders yet.
func testPlan(t *testing.T, product *catalog.Product) *workplan.WorkPlan {
	t.Helper()

	owner, err := kernel.NewEmail("owner@sanger.ac.uk")
	require.NoError(t, err)
	plan, err := workplan.NewWorkPlan(kernel.NewUUID(), owner)
	require.NoError(t, err)
	require.NoError(t, plan.SetOriginalSet(kernel.NewUUID()))
	require.NoError(t, plan.SetProduct(product.ID))
	require.NoError(t, plan.SetProject(42))
	require.NoError(t, plan.SetLockedSet(kernel.NewUUID()))

	return plan
}

func queuedOrder(t *testing.T) *workorder.WorkOrder {
	t.Helper()

	ord, err := workorder.NewWorkOrder(kernel.NewUUID(), kernel.NewUUID(), 0, kernel.NewUUID(), "QC")
	require.NoError(t, err)
	return ord
}

func activeOrder(t *testing.T) *workorder.WorkOrder {
	t.Helper()

	ord := queuedOrder(t)
	require.NoError(t, ord.Submit())
	return ord
}
