package stage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/QuickCooking_Go/internal/domain"
)

// TryEat removes a cooked piece. Eating the last piece completes the loop.
func (p *Pipeline) TryEat(ctx context.Context, id uuid.UUID) error {
	if p.stage != domain.StageConsumption {
		return p.reject(ctx, ActionEat, fmt.Errorf("%w: %s", domain.ErrWrongStage, p.stage))
	}

	idx := -1
	for i, ps := range p.pieces {
		if ps.piece.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return p.reject(ctx, ActionEat, fmt.Errorf("%w: %s", domain.ErrPieceNotFound, id))
	}
	if !p.pieces[idx].piece.Cooked {
		return p.reject(ctx, ActionEat, fmt.Errorf("%w: %s", domain.ErrPieceNotCooked, id))
	}

	p.pieces = append(p.pieces[:idx], p.pieces[idx+1:]...)
	p.settle(ctx)
	return nil
}

// Pieces returns a copy of the live pieces
func (p *Pipeline) Pieces() []domain.Piece {
	out := make([]domain.Piece, len(p.pieces))
	for i, ps := range p.pieces {
		out[i] = ps.piece
	}
	return out
}
