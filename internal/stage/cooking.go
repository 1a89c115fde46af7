package stage

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/osse101/QuickCooking_Go/internal/domain"
	"github.com/osse101/QuickCooking_Go/internal/logger"
	"github.com/osse101/QuickCooking_Go/internal/sampler"
)

// pieceState tracks one piece's cook timer
type pieceState struct {
	piece    domain.Piece
	duration float64
	elapsed  float64
}

// spawnPieces creates floor(MaxPieces/count) pieces per held ingredient,
// never more than MaxPieces in total. Later ingredients can get none.
func (p *Pipeline) spawnPieces(ctx context.Context) {
	p.pieces = nil
	p.cookedCount = 0

	items := p.inventory.Items()
	if len(items) == 0 {
		return
	}

	perIngredient := p.opts.MaxPieces / len(items)
	for _, ing := range items {
		duration := p.opts.CookSeconds
		if ing.CookSeconds > 0 {
			duration = ing.CookSeconds
		}
		for i := 0; i < perIngredient; i++ {
			if len(p.pieces) >= p.opts.MaxPieces {
				break
			}
			p.pieces = append(p.pieces, &pieceState{
				piece: domain.Piece{
					ID:           p.newPieceID(),
					IngredientID: ing.ID,
					Position:     p.randomPanPoint(),
				},
				duration: duration,
			})
		}
	}

	logger.FromContext(ctx).Info(LogMsgPiecesSpawned,
		"loop", p.loop,
		"pieces", len(p.pieces),
		"per_ingredient", perIngredient)
}

// newPieceID draws a v4 UUID from the session's seeded source so replays are stable
func (p *Pipeline) newPieceID() uuid.UUID {
	id, err := uuid.NewRandomFromReader(rngReader{p.rng})
	if err != nil {
		return uuid.New()
	}
	return id
}

type rngReader struct {
	s *sampler.Sampler
}

func (r rngReader) Read(b []byte) (int, error) {
	for i := range b {
		b[i] = byte(r.s.IntN(256))
	}
	return len(b), nil
}

func (p *Pipeline) randomPanPoint() domain.Point {
	pan := p.opts.Pan
	return domain.Point{
		X: pan.Min.X + p.rng.Float64()*(pan.Max.X-pan.Min.X),
		Y: pan.Min.Y + p.rng.Float64()*(pan.Max.Y-pan.Min.Y),
	}
}

// tickPieces advances every uncooked piece. A piece signals cooked once, on
// the first tick where its accumulated time reaches its duration.
func (p *Pipeline) tickPieces(ctx context.Context, elapsed float64) {
	for _, ps := range p.pieces {
		if ps.piece.Cooked {
			continue
		}
		ps.elapsed += elapsed
		if ps.duration > 0 {
			ps.piece.CookProgress = math.Min(ps.elapsed/ps.duration, 1)
		}
		if ps.elapsed >= ps.duration-cookTolerance {
			ps.piece.Cooked = true
			ps.piece.CookProgress = 1
			p.cookedCount++
			logger.FromContext(ctx).Debug(LogMsgPieceCooked,
				"piece", ps.piece.ID,
				"ingredient", ps.piece.IngredientID,
				"cooked", p.cookedCount,
				"total", len(p.pieces))
		}
	}
	p.reporter.Check(ctx, p.cookedCount <= len(p.pieces), componentPipeline,
		"cooked count %d exceeds %d pieces", p.cookedCount, len(p.pieces))
}

// TryStir pushes pieces within StirRadius of position away from it by
// StirForce, keeping them inside the pan. Cooking progress is unaffected.
func (p *Pipeline) TryStir(ctx context.Context, position domain.Point) error {
	if p.stage != domain.StageCooking {
		return p.reject(ctx, ActionStir, fmt.Errorf("%w: %s", domain.ErrWrongStage, p.stage))
	}

	for _, ps := range p.pieces {
		pos := ps.piece.Position
		d := pos.Distance(position)
		if d > p.opts.StirRadius {
			continue
		}

		var dir domain.Point
		if d == 0 {
			angle := p.rng.Float64() * 2 * math.Pi
			dir = domain.Point{X: math.Cos(angle), Y: math.Sin(angle)}
		} else {
			dir = pos.Sub(position).Scale(1 / d)
		}
		ps.piece.Position = clampToRect(pos.Add(dir.Scale(p.opts.StirForce)), p.opts.Pan)
	}
	return nil
}

func clampToRect(pt domain.Point, r domain.Rect) domain.Point {
	return domain.Point{
		X: math.Max(r.Min.X, math.Min(r.Max.X, pt.X)),
		Y: math.Max(r.Min.Y, math.Min(r.Max.Y, pt.Y)),
	}
}
