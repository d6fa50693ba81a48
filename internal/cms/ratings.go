package cms

import (
	"context"
	"math"

	"github.com/ignatzorin/kerjaku-backend/internal/models"
)

// AverageRating среднее оценок с округлением до десятых.
func AverageRating(reviews []models.Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10, len(reviews)
}

// ReviewsOf отзывы о работнике.
func ReviewsOf(reviews []models.Review, workerID string) []models.Review {
	out := make([]models.Review, 0)
	for _, r := range reviews {
		if r.RevieweeID == workerID && r.RevieweeRole == models.RoleWorker {
			out = append(out, r)
		}
	}
	return out
}

// syncWorkerRatings пересчитывает average_rating и review_count работников,
// чьи отзывы изменились при записи коллекции отзывов.
func (r *Registry) syncWorkerRatings(ctx context.Context, before, after []models.Review) error {
	affected := changedReviewees(before, after)
	if len(affected) == 0 {
		return nil
	}

	workers, err := r.Workers.Load(ctx)
	if err != nil {
		return err
	}

	changed := false
	for i := range workers {
		if _, ok := affected[workers[i].ID]; !ok {
			continue
		}
		avg, count := AverageRating(ReviewsOf(after, workers[i].ID))
		if workers[i].AverageRating != avg || workers[i].ReviewCount != count {
			workers[i].AverageRating = avg
			workers[i].ReviewCount = count
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return r.Workers.Save(ctx, workers)
}

// changedReviewees id работников, у которых отзыв добавлен, удалён или изменён.
func changedReviewees(before, after []models.Review) map[string]struct{} {
	affected := make(map[string]struct{})
	mark := func(rv models.Review) {
		if rv.RevieweeRole == models.RoleWorker {
			affected[rv.RevieweeID] = struct{}{}
		}
	}

	old := make(map[string]models.Review, len(before))
	for _, rv := range before {
		old[rv.ID] = rv
	}
	for _, rv := range after {
		prev, ok := old[rv.ID]
		delete(old, rv.ID)
		if ok && prev.RevieweeID == rv.RevieweeID && prev.RevieweeRole == rv.RevieweeRole && prev.Rating == rv.Rating {
			continue
		}
		mark(rv)
		if ok {
			mark(prev)
		}
	}
	for _, rv := range old {
		mark(rv)
	}
	return affected
}
