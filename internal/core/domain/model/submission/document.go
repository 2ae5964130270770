// Package submission defines the denormalized document posted to the
// execution LIMS when a work order is submitted. Field names are part of the
// wire contract with the receiving LIMS and must not change.
package submission

import "time"

// ContainerRecord describes the labware position of one material.
type ContainerRecord struct {
	Barcode   string `json:"barcode"`
	NumOfRows int    `json:"num_of_rows"`
	NumOfCols int    `json:"num_of_cols"`
	Address   string `json:"address"`
}

// MaterialRecord is the flattened description of one material in the order's
// working set. Container is nil when the material is not held in any known
// container.
type MaterialRecord struct {
	ID             string           `json:"_id"`
	IsTumour       any              `json:"is_tumour"`
	SupplierName   any              `json:"supplier_name"`
	TaxonID        any              `json:"taxon_id"`
	TissueType     any              `json:"tissue_type"`
	Container      *ContainerRecord `json:"container"`
	Gender         any              `json:"gender"`
	DonorID        any              `json:"donor_id"`
	Phenotype      any              `json:"phenotype"`
	ScientificName any              `json:"scientific_name"`
	Available      any              `json:"available"`
}

// Payload is the body of the submission document for a single work order.
// Status is only populated for read-back previews, never for submission.
type Payload struct {
	ProductName     string           `json:"product_name"`
	ProductVersion  int              `json:"product_version"`
	WorkOrderID     string           `json:"work_order_id"`
	Comment         string           `json:"comment"`
	ProjectUUID     string           `json:"project_uuid"`
	ProjectName     string           `json:"project_name"`
	DataReleaseUUID string           `json:"data_release_uuid"`
	CostCode        string           `json:"cost_code"`
	DesiredDate     *time.Time       `json:"desired_date"`
	Materials       []MaterialRecord `json:"materials"`
	Modules         []string         `json:"modules"`
	Status          string           `json:"status,omitempty"`
}

// Document is the top-level submission envelope.
type Document struct {
	WorkOrder Payload `json:"work_order"`
}
