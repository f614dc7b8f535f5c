// Package verify orchestrates a verification request: validate the subject,
// gather optional search context, ask the model, normalize the answer.
package verify

import (
	"context"
	"fmt"
	"log"

	"github.com/veriscope/veriscope/src/ai/core"
	"github.com/veriscope/veriscope/src/heuristic"
	"github.com/veriscope/veriscope/src/prompt"
	"github.com/veriscope/veriscope/src/search"
	"github.com/veriscope/veriscope/src/verdict"
)

// Service holds the per-process collaborators. Constructed once at startup;
// all fields are read-only afterwards, so requests share it freely.
type Service struct {
	judge      core.Client // nil when no provider credential is configured
	searcher   search.Searcher
	analyzer   *heuristic.Analyzer
	textNorm   *verdict.Normalizer
	claimNorm  *verdict.Normalizer
	maxResults int
}

func New(judge core.Client, searcher search.Searcher, maxResults int) *Service {
	if searcher == nil {
		searcher = search.Disabled{}
	}
	if maxResults <= 0 {
		maxResults = verdict.MaxSources
	}
	return &Service{
		judge:      judge,
		searcher:   searcher,
		analyzer:   heuristic.New(),
		textNorm:   verdict.NewNormalizer(verdict.SchemaLabel),
		claimNorm:  verdict.NewNormalizer(verdict.SchemaVerdict),
		maxResults: maxResults,
	}
}

// VerifyText runs the full pipeline for the label-schema text endpoint.
func (s *Service) VerifyText(ctx context.Context, raw string) (verdict.Verdict, error) {
	return s.verifyText(ctx, raw, s.textNorm)
}

// VerifyClaim is the verdict-schema variant of VerifyText.
func (s *Service) VerifyClaim(ctx context.Context, raw string) (verdict.Verdict, error) {
	return s.verifyText(ctx, raw, s.claimNorm)
}

func (s *Service) verifyText(ctx context.Context, raw string, norm *verdict.Normalizer) (verdict.Verdict, error) {
	subject, err := NormalizeText(raw)
	if err != nil {
		return verdict.Verdict{}, err
	}
	if s.judge == nil {
		return verdict.Verdict{}, ErrConfiguration
	}

	results := s.searcher.Search(ctx, subject, s.maxResults)

	out, err := s.judge.Judge(ctx, prompt.Verification(norm.Schema(), subject, results))
	if err != nil {
		log.Printf("verify: judge failed (%s): %v", s.judge.Name(), err)
		return verdict.Verdict{}, fmt.Errorf("%w: %s", ErrProvider, s.judge.Name())
	}

	return norm.Normalize(out, results), nil
}

// VerifyQuick is the heuristic-only path; it makes no outbound calls and
// works without any provider credential.
func (s *Service) VerifyQuick(raw string) (verdict.Verdict, error) {
	subject, err := NormalizeText(raw)
	if err != nil {
		return verdict.Verdict{}, err
	}
	return s.analyzer.Analyze(subject), nil
}

// VerifyImage judges an inline image. No search context: there is no query
// to derive from raw pixels.
func (s *Service) VerifyImage(ctx context.Context, rawB64 string) (verdict.Verdict, error) {
	payload, mime, err := DecodeImage(rawB64)
	if err != nil {
		return verdict.Verdict{}, err
	}
	if s.judge == nil {
		return verdict.Verdict{}, ErrConfiguration
	}

	out, err := s.judge.Judge(ctx, prompt.Image(verdict.SchemaLabel, payload, mime))
	if err != nil {
		log.Printf("verify: image judge failed (%s): %v", s.judge.Name(), err)
		return verdict.Verdict{}, fmt.Errorf("%w: %s", ErrProvider, s.judge.Name())
	}

	return s.textNorm.Normalize(out, nil), nil
}

// Configured reports whether a model provider is available.
func (s *Service) Configured() bool { return s.judge != nil }

// ProviderName returns the active provider name, or empty when unconfigured.
func (s *Service) ProviderName() string {
	if s.judge == nil {
		return ""
	}
	return s.judge.Name()
}
