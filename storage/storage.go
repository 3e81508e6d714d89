package storage

import (
	"context"

	"ewintr.nl/tubesum/model"
)

type SummaryRelRepository interface {
	Save(ctx context.Context, summary *model.Summary) error
	List(ctx context.Context, limit int) ([]*model.Summary, error)
}

type SummaryVecRepository interface {
	Save(ctx context.Context, summary *model.Summary) error
}
