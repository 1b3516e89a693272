package testutils

import (
	"context"
	"time"

	athletedomain "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/domain"
	athletedb "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/infrastructure/repositories"
	championshipdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/domain"
	championshipdb "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/infrastructure/repositories"
	trickdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/domain"
	trickdb "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/infrastructure/repositories"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DataGenerator builds deterministic fixtures from a seed.
type DataGenerator struct {
	faker *gofakeit.Faker
}

// NewDataGenerator returns a generator seeded with seed.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{faker: gofakeit.New(uint64(seed))}
}

// Championship returns a draft championship owned by createdBy.
func (g *DataGenerator) Championship(createdBy string) *championshipdb.Championship {
	return &championshipdb.Championship{
		ID:          uuid.New(),
		Name:        g.faker.City() + " Slackline Open",
		Description: g.faker.Paragraph(1, 2, 8, " "),
		Date:        g.faker.DateRange(time.Now().AddDate(0, 0, 7), time.Now().AddDate(0, 2, 0)).UTC(),
		Location:    g.faker.Address().City,
		CreatedBy:   createdBy,
		Status:      championshipdomain.StatusDraft,
	}
}

// Athletes returns n athletes registered in championshipID.
func (g *DataGenerator) Athletes(championshipID uuid.UUID, n int) []*athletedb.Athlete {
	levels := []string{
		string(athletedomain.LevelBeginner),
		string(athletedomain.LevelAmateur),
		string(athletedomain.LevelProfessional),
	}
	out := make([]*athletedb.Athlete, n)
	for i := range out {
		out[i] = &athletedb.Athlete{
			ID:             uuid.New(),
			ChampionshipID: championshipID,
			Name:           g.faker.FirstName() + " " + g.faker.LastName(),
			Category:       athletedomain.CategoryTrickline,
			Level:          athletedomain.Level(g.faker.RandomString(levels)),
		}
	}
	return out
}

// ExecutionScore returns a judge score in [0, 10] with two decimals.
func (g *DataGenerator) ExecutionScore() float64 {
	return float64(g.faker.Number(0, 1000)) / 100
}

// SeedChampionship stores a championship with n athletes.
func SeedChampionship(ctx context.Context, db bun.IDB, gen *DataGenerator, createdBy string, n int) (*championshipdb.Championship, []*athletedb.Athlete, error) {
	c := gen.Championship(createdBy)
	if err := championshipdb.NewRepository(db).Create(ctx, db, c); err != nil {
		return nil, nil, err
	}
	athletes := gen.Athletes(c.ID, n)
	if n > 0 {
		if err := athletedb.NewRepository(db).Create(ctx, db, athletes...); err != nil {
			return nil, nil, err
		}
	}
	return c, athletes, nil
}

// SeedTrick stores one trick and returns it.
func SeedTrick(ctx context.Context, db bun.IDB, gen *DataGenerator) (*trickdb.Trick, error) {
	t := &trickdb.Trick{
		ID:         uuid.New(),
		Name:       gen.faker.Adjective() + " " + gen.faker.Animal() + " " + gen.faker.LetterN(4),
		Type:       trickdomain.TypeCombo,
		BasePoints: gen.faker.Number(1, 10),
	}
	if err := trickdb.NewRepository(db).Create(ctx, db, t); err != nil {
		return nil, err
	}
	return t, nil
}
