package queries

import (
	"context"
	"errors"
	"fmt"

	"workplans/internal/core/domain/model/catalog"
	"workplans/internal/core/domain/model/kernel"
	"workplans/internal/core/domain/model/remote"
	"workplans/internal/core/domain/model/submission"
	"workplans/internal/core/domain/model/workorder"
	"workplans/internal/core/domain/model/workplan"
	"workplans/internal/core/ports"
	"workplans/internal/pkg/errs"
	"workplans/internal/pkg/metrics"
	"workplans/internal/pkg/pagination"
)

// BuildSubmissionQueryResponse carries the assembled document together with
// the URL of the LIMS the order's product is executed in.
type BuildSubmissionQueryResponse struct {
	Document *submission.Document
	LIMSURL  string
}

// BuildSubmissionQueryHandler assembles the submission document for one work
// order by joining the order's plan, product, working set, materials,
// containers and project across the owning services.
//
// Assembly is read-only and retryable: no state changes anywhere, and any
// failure yields no document at all rather than a partial one.
//
// Example:
//
//	handler := NewBuildSubmissionQueryHandler(plans, orders, catalogue,
//	    sets, materials, containers, studies)
//	query, _ := NewBuildSubmissionQuery(orderID, false)
//	result, err := handler.Handle(ctx, query)
//	if errors.Is(err, ErrMaterialUnavailable) {
//	    // the working set contains material that cannot be worked on
//	}
type BuildSubmissionQueryHandler struct {
	plans      ports.PlanRepository
	orders     ports.OrderRepository
	catalogue  ports.CatalogueRepository
	sets       ports.SetGateway
	materials  ports.MaterialGateway
	containers ports.ContainerGateway
	studies    ports.StudyGateway
}

// NewBuildSubmissionQueryHandler creates a handler for document assembly.
func NewBuildSubmissionQueryHandler(
	plans ports.PlanRepository,
	orders ports.OrderRepository,
	catalogue ports.CatalogueRepository,
	sets ports.SetGateway,
	materials ports.MaterialGateway,
	containers ports.ContainerGateway,
	studies ports.StudyGateway,
) BuildSubmissionQueryHandler {
	return BuildSubmissionQueryHandler{
		plans:      plans,
		orders:     orders,
		catalogue:  catalogue,
		sets:       sets,
		materials:  materials,
		containers: containers,
		studies:    studies,
	}
}

// Handle assembles the document.
//
// Errors:
//   - ErrSetNotFound: the order has no working set or the set service does
//     not know it.
//   - ErrMaterialUnavailable: the working set holds unavailable material.
//   - errs.ObjectNotFoundError: the order, plan or product does not exist.
func (h BuildSubmissionQueryHandler) Handle(
	ctx context.Context,
	query BuildSubmissionQuery,
) (BuildSubmissionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return BuildSubmissionQueryResponse{}, err
	}

	response, err := h.assemble(ctx, query)
	if err != nil {
		metrics.ExportFailuresTotal.Inc()
		return BuildSubmissionQueryResponse{}, err
	}

	return response, nil
}

func (h BuildSubmissionQueryHandler) assemble(
	ctx context.Context,
	query BuildSubmissionQuery,
) (BuildSubmissionQueryResponse, error) {
	ord, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return BuildSubmissionQueryResponse{}, err
	}

	plan, err := h.plans.Get(ctx, ord.PlanID())
	if err != nil {
		return BuildSubmissionQueryResponse{}, err
	}

	product, err := h.resolveProduct(ctx, plan)
	if err != nil {
		return BuildSubmissionQueryResponse{}, err
	}

	cache := newExportCache(h.sets, h.studies)

	records, err := h.assembleMaterials(ctx, ord, cache)
	if err != nil {
		return BuildSubmissionQueryResponse{}, err
	}

	proposal, project, err := h.resolveProject(ctx, plan, cache)
	if err != nil {
		return BuildSubmissionQueryResponse{}, err
	}

	payload := submission.Payload{
		ProductName:     product.Name,
		ProductVersion:  product.Version,
		WorkOrderID:     ord.ID().String(),
		Comment:         ord.Comment(),
		ProjectUUID:     project.UUID.String(),
		ProjectName:     project.Name,
		DataReleaseUUID: project.DataReleaseUUID,
		CostCode:        proposal.CostCode,
		DesiredDate:     ord.DesiredDate(),
		Materials:       records,
		Modules:         ord.ModuleNames(),
	}
	if query.IncludeStatus() {
		payload.Status = ord.Status().String()
	}

	return BuildSubmissionQueryResponse{
		Document: &submission.Document{WorkOrder: payload},
		LIMSURL:  product.Catalogue.URL,
	}, nil
}

func (h BuildSubmissionQueryHandler) resolveProduct(
	ctx context.Context,
	plan *workplan.WorkPlan,
) (*catalog.Product, error) {
	if plan.ProductID() == nil {
		return nil, errs.NewValueIsRequiredError("plan product")
	}

	return h.catalogue.GetProduct(ctx, *plan.ProductID())
}

// assembleMaterials resolves the order's working set, drains its materials
// and projects them into the document's material records. The whole export
// aborts when any material is unavailable.
func (h BuildSubmissionQueryHandler) assembleMaterials(
	ctx context.Context,
	ord *workorder.WorkOrder,
	cache *exportCache,
) ([]submission.MaterialRecord, error) {
	if ord.WorkingSet() == nil {
		return nil, fmt.Errorf("%w: order %s has no working set", ErrSetNotFound, ord.ID())
	}

	set, err := cache.Set(ctx, *ord.WorkingSet())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSetNotFound, *ord.WorkingSet())
		}
		return nil, err
	}

	cursor, err := h.materials.QueryByIDs(ctx, set.MaterialIDs)
	if err != nil {
		return nil, err
	}

	materials, err := pagination.DrainAll(ctx, cursor)
	if err != nil {
		return nil, err
	}

	records := make([]submission.MaterialRecord, 0, len(materials))
	for _, material := range materials {
		if !material.Available() {
			return nil, fmt.Errorf("%w: %s", ErrMaterialUnavailable, material.ID)
		}
		records = append(records, materialRecord(material))
	}

	if err = h.enrichContainers(ctx, set.MaterialIDs, records); err != nil {
		return nil, err
	}

	return records, nil
}

// resolveProject resolves the plan's proposal node and the project node the
// document describes. A subproject proposal substitutes its parent project
// for the name, uuid and data release strategy while keeping its own cost
// code.
func (h BuildSubmissionQueryHandler) resolveProject(
	ctx context.Context,
	plan *workplan.WorkPlan,
	cache *exportCache,
) (proposal, project *remote.ProjectNode, err error) {
	if plan.ProjectID() == nil {
		return nil, nil, errs.NewValueIsRequiredError("plan project")
	}

	proposal, err = cache.Node(ctx, *plan.ProjectID())
	if err != nil {
		return nil, nil, err
	}

	project = proposal
	if proposal.IsSubproject {
		if proposal.ParentID == nil {
			return nil, nil, errs.NewValueIsRequiredError("subproject parent")
		}
		project, err = cache.Node(ctx, *proposal.ParentID)
		if err != nil {
			return nil, nil, err
		}
	}

	return proposal, project, nil
}

func materialRecord(material *remote.Material) submission.MaterialRecord {
	return submission.MaterialRecord{
		ID:             material.ID,
		IsTumour:       material.Attributes["is_tumour"],
		SupplierName:   material.Attributes["supplier_name"],
		TaxonID:        material.Attributes["taxon_id"],
		TissueType:     material.Attributes["tissue_type"],
		Gender:         material.Attributes["gender"],
		DonorID:        material.Attributes["donor_id"],
		Phenotype:      material.Attributes["phenotype"],
		ScientificName: material.Attributes["scientific_name"],
		Available:      material.Attributes["available"],
	}
}

// exportCache memoizes remote lookups within one assembly call so repeated
// references to the same set or project node hit the services once.
type exportCache struct {
	sets    ports.SetGateway
	studies ports.StudyGateway

	setsByUUID map[kernel.UUID]*remote.Set
	nodesByID  map[int64]*remote.ProjectNode
}

func newExportCache(sets ports.SetGateway, studies ports.StudyGateway) *exportCache {
	return &exportCache{
		sets:       sets,
		studies:    studies,
		setsByUUID: make(map[kernel.UUID]*remote.Set),
		nodesByID:  make(map[int64]*remote.ProjectNode),
	}
}

// Set retrieves a set with its materials, memoized by uuid.
func (c *exportCache) Set(ctx context.Context, setUUID kernel.UUID) (*remote.Set, error) {
	if cached, ok := c.setsByUUID[setUUID]; ok {
		return cached, nil
	}

	set, err := c.sets.FindWithMaterials(ctx, setUUID)
	if err != nil {
		return nil, err
	}

	c.setsByUUID[setUUID] = set
	return set, nil
}

// Node retrieves a project tree node, memoized by id.
func (c *exportCache) Node(ctx context.Context, nodeID int64) (*remote.ProjectNode, error) {
	if cached, ok := c.nodesByID[nodeID]; ok {
		return cached, nil
	}

	node, err := c.studies.FindNode(ctx, nodeID)
	if err != nil {
		return nil, err
	}

	c.nodesByID[nodeID] = node
	return node, nil
}
