package queries

import (
	"context"

	"workplans/internal/core/domain/model/submission"
)

// enrichContainers fills in the container position of each material record
// from the container service. Containers arrive as a paginated cursor; every
// page is drained and each slot holding one of the order's materials writes
// the container's barcode, dimensions and slot address into that material's
// record. The first slot seen for a material wins; later occurrences of the
// same material are ignored.
func (h BuildSubmissionQueryHandler) enrichContainers(
	ctx context.Context,
	materialIDs []string,
	records []submission.MaterialRecord,
) error {
	wanted := make(map[string]*submission.MaterialRecord, len(records))
	for i := range records {
		wanted[records[i].ID] = &records[i]
	}

	cursor, err := h.containers.QueryBySlotMaterialIDs(ctx, materialIDs)
	if err != nil {
		return err
	}

	for cursor != nil {
		for _, container := range cursor.CurrentPage() {
			for _, slot := range container.Slots {
				record, ok := wanted[slot.MaterialID]
				if !ok || record.Container != nil {
					continue
				}

				record.Container = &submission.ContainerRecord{
					Barcode:   container.Barcode,
					NumOfRows: container.NumRows,
					NumOfCols: container.NumCols,
					Address:   slot.Address,
				}
			}
		}

		if !cursor.HasNext() {
			break
		}

		next, nextErr := cursor.Next(ctx)
		if nextErr != nil {
			return nextErr
		}
		cursor = next
	}

	return nil
}
