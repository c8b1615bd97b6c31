package service

import (
	"context"
	"time"

	"github.com/alexanderramin/spelltree/internal/app"
	"github.com/alexanderramin/spelltree/internal/prereq"
)

type prereqService struct {
	observer UseCaseObserver
}

func NewPrereqService(observers ...UseCaseObserver) app.ScorePrereqsUseCase {
	return &prereqService{observer: useCaseObserverOrNoop(observers)}
}

func (s *prereqService) ScorePrereqs(ctx context.Context, req prereq.Request) (resp *prereq.Response, err error) {
	startedAt := time.Now()
	fields := map[string]any{"pairs": len(req.Pairs)}
	defer observe(ctx, s.observer, "score-prereqs", startedAt, fields, &err)

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	out := prereq.Process(req)
	fields["scored"] = out.Count
	return &out, nil
}
