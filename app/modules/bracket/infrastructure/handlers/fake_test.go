package brackethandlers

import (
	"context"

	authdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/domain"
	bracketservice "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/application"
	bracketdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/domain"
	bracketdb "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/infrastructure/repositories"
	"github.com/google/uuid"
)

type FakeService struct {
	trace []string

	LastRequest bracketservice.GenerateRequest
	LastWinner  uuid.UUID

	GenerateBracketFunc func(ctx context.Context, caller *authdomain.Claims, championshipID uuid.UUID, req bracketservice.GenerateRequest) (*bracketservice.Bracket, error)
	RecordResultFunc    func(ctx context.Context, caller *authdomain.Claims, id uuid.UUID, winnerID uuid.UUID) (*bracketdb.Match, error)
}

func (f *FakeService) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeService) GenerateBracket(ctx context.Context, caller *authdomain.Claims, championshipID uuid.UUID, req bracketservice.GenerateRequest) (*bracketservice.Bracket, error) {
	f.record("GenerateBracket")
	f.LastRequest = req
	if f.GenerateBracketFunc != nil {
		return f.GenerateBracketFunc(ctx, caller, championshipID, req)
	}
	return &bracketservice.Bracket{ChampionshipID: championshipID, Rounds: []bracketservice.Round{}}, nil
}

func (f *FakeService) GetBracket(_ context.Context, _ uuid.UUID) (*bracketservice.Bracket, error) {
	f.record("GetBracket")
	return nil, bracketdomain.ErrBracketNotFound
}

func (f *FakeService) ResetBracket(context.Context, *authdomain.Claims, uuid.UUID) error {
	f.record("ResetBracket")
	return nil
}

func (f *FakeService) GetMatch(_ context.Context, id uuid.UUID) (*bracketservice.MatchView, error) {
	f.record("GetMatch")
	return &bracketservice.MatchView{Match: bracketdb.Match{ID: id, Status: bracketdomain.StatusPending}}, nil
}

func (f *FakeService) StartMatch(_ context.Context, _ *authdomain.Claims, _ uuid.UUID) (*bracketdb.Match, error) {
	f.record("StartMatch")
	return nil, bracketdomain.ErrMatchNotReady
}

func (f *FakeService) RecordResult(ctx context.Context, caller *authdomain.Claims, id uuid.UUID, winnerID uuid.UUID) (*bracketdb.Match, error) {
	f.record("RecordResult")
	f.LastWinner = winnerID
	if f.RecordResultFunc != nil {
		return f.RecordResultFunc(ctx, caller, id, winnerID)
	}
	return &bracketdb.Match{ID: id, WinnerID: &winnerID, Status: bracketdomain.StatusCompleted}, nil
}

func (f *FakeService) DecideMatch(_ context.Context, _ *authdomain.Claims, _ uuid.UUID) (*bracketdb.Match, error) {
	f.record("DecideMatch")
	return nil, bracketdomain.ErrUndecidedMatch
}

var _ bracketservice.Service = (*FakeService)(nil)
