// Package progress records which lessons a user completed in a course.
package progress

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/eduverse/core"
	"github.com/trezcool/eduverse/core/catalog"
)

const StorageNamespace = "progress"

type record struct {
	Completed []string `json:"completed"` // lesson ids, sorted
}

type Service struct {
	kv core.KeyValueStore
	mu sync.Mutex // serializes read-modify-write of records
}

func NewService(kv core.KeyValueStore) *Service {
	return &Service{kv: kv}
}

func key(userID, courseID string) string {
	return core.Namespaced(StorageNamespace, userID+":"+courseID)
}

func (svc *Service) load(ctx context.Context, userID, courseID string) (record, error) {
	var rec record
	data, err := svc.kv.Get(ctx, key(userID, courseID))
	switch {
	case errors.Is(err, core.ErrKeyNotFound):
		return rec, nil
	case err != nil:
		return rec, errors.Wrap(err, "loading progress")
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return record{}, nil
	}
	return rec, nil
}

// Completed returns the ids of the completed lessons that still belong to the course.
func (svc *Service) Completed(ctx context.Context, userID string, course catalog.Course) ([]string, error) {
	rec, err := svc.load(ctx, userID, course.ID)
	if err != nil {
		return nil, err
	}
	done := make([]string, 0, len(rec.Completed))
	for _, id := range rec.Completed {
		if _, ok := course.Lesson(id); ok {
			done = append(done, id)
		}
	}
	return done, nil
}

// Percent is round(100 * completed / lessons); 0 for a course without lessons.
func (svc *Service) Percent(ctx context.Context, userID string, course catalog.Course) (int, error) {
	if len(course.Lessons) == 0 {
		return 0, nil
	}
	done, err := svc.Completed(ctx, userID, course)
	if err != nil {
		return 0, err
	}
	return int(math.Round(100 * float64(len(done)) / float64(len(course.Lessons)))), nil
}

// CompleteLesson is idempotent.
func (svc *Service) CompleteLesson(ctx context.Context, userID string, course catalog.Course, lessonID string) error {
	if _, ok := course.Lesson(lessonID); !ok {
		return catalog.ErrLessonNotFound
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	rec, err := svc.load(ctx, userID, course.ID)
	if err != nil {
		return err
	}
	idx := sort.SearchStrings(rec.Completed, lessonID)
	if idx < len(rec.Completed) && rec.Completed[idx] == lessonID {
		return nil
	}
	rec.Completed = append(rec.Completed, "")
	copy(rec.Completed[idx+1:], rec.Completed[idx:])
	rec.Completed[idx] = lessonID

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return errors.Wrap(svc.kv.Set(ctx, key(userID, course.ID), data), "saving progress")
}

// Reset forgets every completed lesson of the course.
func (svc *Service) Reset(ctx context.Context, userID, courseID string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.kv.Delete(ctx, key(userID, courseID))
}

// CourseProgress is a dashboard row.
type CourseProgress struct {
	Course  catalog.Course `json:"course"`
	Percent int            `json:"percent"`
}

// Dashboard pairs each enrolled course with its progress, and sums the hours learned.
func (svc *Service) Dashboard(ctx context.Context, userID string, enrolled []catalog.Course) ([]CourseProgress, float64, error) {
	rows := make([]CourseProgress, 0, len(enrolled))
	var hours float64
	for _, c := range enrolled {
		pct, err := svc.Percent(ctx, userID, c)
		if err != nil {
			return nil, 0, err
		}
		rows = append(rows, CourseProgress{Course: c, Percent: pct})
		hours += HoursLearned(c, pct)
	}
	return rows, math.Round(hours*10) / 10, nil
}

// HoursLearned is the share of the course duration covered by pct.
// Durations are free text such as "52 hours"; unparsable durations count as 0.
func HoursLearned(course catalog.Course, pct int) float64 {
	return ParseHours(course.Duration) * float64(pct) / 100
}

// ParseHours reads the leading number of durations like "52 hours", "1.5 hours", "45 min" or "90 minutes".
func ParseHours(duration string) float64 {
	fields := strings.Fields(strings.ToLower(duration))
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	if len(fields) > 1 && strings.HasPrefix(fields[1], "min") {
		return n / 60
	}
	return n
}
