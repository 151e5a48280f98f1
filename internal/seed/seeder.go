package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/claude/overload/internal/models"
	"github.com/claude/overload/internal/storage"
)

// libraryEmail is the account owning stock templates. It has an empty
// password hash and can never log in.
const libraryEmail = "library@overload.invalid"

// Stats tracks seeding progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	ExercisesInserted int
	ExercisesUpdated  int
	MesocyclesSeeded  int
}

// Seeder loads exercise library CSV files and stock mesocycle YAML files
// into the database, tracking applied files in a local state database so
// re-runs only pick up changes.
type Seeder struct {
	db      *storage.DB
	state   *StateDB
	log     *slog.Logger
	dryRun  bool
	stats   Stats
	ownerID int64
}

// New creates a new Seeder. state may be nil, in which case every file is
// applied unconditionally.
func New(db *storage.DB, state *StateDB, log *slog.Logger, dryRun bool) *Seeder {
	return &Seeder{db: db, state: state, log: log, dryRun: dryRun}
}

// Seed processes all .csv and .yaml/.yml files directly under dir in name
// order. CSV files feed the exercise library first so YAML templates can
// resolve exercise names.
func (s *Seeder) Seed(ctx context.Context, dir string) (*Stats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &s.stats, fmt.Errorf("reading seed dir: %w", err)
	}

	var csvFiles, yamlFiles []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".csv":
			csvFiles = append(csvFiles, e.Name())
		case ".yaml", ".yml":
			yamlFiles = append(yamlFiles, e.Name())
		}
	}
	sort.Strings(csvFiles)
	sort.Strings(yamlFiles)

	for _, name := range append(csvFiles, yamlFiles...) {
		path := filepath.Join(dir, name)
		if err := s.seedFile(ctx, path, name); err != nil {
			s.stats.FilesErrored++
			s.log.Error("seed file failed", "file", name, "error", err)
			continue
		}
	}
	return &s.stats, nil
}

func (s *Seeder) seedFile(ctx context.Context, path, relPath string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hashing: %w", err)
	}

	if s.state != nil {
		seeded, err := s.state.IsSeeded(relPath, info.Size(), hash)
		if err != nil {
			return fmt.Errorf("state lookup: %w", err)
		}
		if seeded {
			s.stats.FilesSkipped++
			s.log.Info("already seeded, skipping", "file", relPath)
			return nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if filepath.Ext(path) == ".csv" {
		err = s.seedExercises(ctx, f, relPath)
	} else {
		err = s.seedMesocycle(ctx, f, relPath)
	}
	if err != nil {
		return err
	}
	s.stats.FilesProcessed++

	if s.state != nil && !s.dryRun {
		if err := s.state.MarkSeeded(relPath, info.Size(), hash); err != nil {
			return fmt.Errorf("recording state: %w", err)
		}
	}
	return nil
}

func (s *Seeder) seedExercises(ctx context.Context, f *os.File, relPath string) error {
	exercises, err := ParseExerciseCSV(f)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}

	if s.dryRun {
		s.log.Info("dry run", "file", relPath, "exercises", len(exercises))
		return nil
	}

	for _, e := range exercises {
		inserted, err := s.db.UpsertDefaultExercise(ctx, e)
		if err != nil {
			return err
		}
		if inserted {
			s.stats.ExercisesInserted++
		} else {
			s.stats.ExercisesUpdated++
		}
	}
	s.log.Info("seeded", "file", relPath, "exercises", len(exercises))
	return nil
}

func (s *Seeder) seedMesocycle(ctx context.Context, f *os.File, relPath string) error {
	stock, err := ParseStockMesocycleYAML(f)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}

	if s.dryRun {
		s.log.Info("dry run", "file", relPath, "mesocycle", stock.Name, "workouts", len(stock.Workouts))
		return nil
	}

	if s.ownerID == 0 {
		s.ownerID, err = s.db.EnsureUser(ctx, libraryEmail, "Exercise Library")
		if err != nil {
			return fmt.Errorf("ensuring library account: %w", err)
		}
	}

	m := models.Mesocycle{
		UserID:      s.ownerID,
		Name:        stock.Name,
		Description: stock.Description,
		Weeks:       stock.Weeks,
		DaysPerWeek: stock.DaysPerWeek,
		IsStock:     true,
	}
	for wi, w := range stock.Workouts {
		wt := models.WorkoutTemplate{
			Name:        w.Name,
			Description: w.Description,
			OrderIndex:  wi + 1,
		}
		for ei, e := range w.Exercises {
			exerciseID, err := s.db.ExerciseIDByName(ctx, e.Exercise)
			if err != nil {
				return fmt.Errorf("workout %q: %w", w.Name, err)
			}
			wt.Exercises = append(wt.Exercises, models.TemplateExercise{
				ExerciseID:    exerciseID,
				OrderIndex:    ei + 1,
				TargetSets:    e.TargetSets,
				TargetRepsMin: e.TargetRepsMin,
				TargetRepsMax: e.TargetRepsMax,
				StartingRIR:   e.StartingRIR,
				EndingRIR:     e.EndingRIR,
				Notes:         e.Notes,
			})
		}
		m.Workouts = append(m.Workouts, wt)
	}

	if _, err := s.db.ReplaceStockMesocycle(ctx, m); err != nil {
		return err
	}
	s.stats.MesocyclesSeeded++
	s.log.Info("seeded", "file", relPath, "mesocycle", stock.Name, "workouts", len(stock.Workouts))
	return nil
}
