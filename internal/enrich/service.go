package enrich

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/crewcast-studio/enrich-cli/internal/config"
)

// Service orchestrates the enrichment providers per the configured
// strategy. Providers are held in registration order, which also defines
// fallback order. The service itself holds no per-call state.
type Service struct {
	strategy  config.StrategyConfig
	providers []Provider
}

// NewService creates a Service over the given providers. Registration
// order is significant: sequential fallback and the parallel tie-break
// both follow it.
func NewService(strategy config.StrategyConfig, providers ...Provider) *Service {
	return &Service{strategy: strategy, providers: providers}
}

// FindEmail resolves an email for the request using the configured
// strategy. It never returns an error: every failure mode is shaped into
// the response.
func (s *Service) FindEmail(ctx context.Context, req Request) Response {
	enabled := s.enabledProviders()
	if len(enabled) == 0 {
		return errorResponse(ProviderNone, "no enrichment providers enabled")
	}

	if s.strategy.Parallel && len(enabled) > 1 {
		return s.findParallel(ctx, req, enabled)
	}
	return s.findSequential(ctx, req, enabled)
}

// FindEmailWith forces a single named provider, bypassing the strategy.
func (s *Service) FindEmailWith(ctx context.Context, providerName string, req Request) Response {
	for _, p := range s.providers {
		if p.Name() != providerName {
			continue
		}
		if !p.Enabled() {
			return errorResponse(providerName, fmt.Sprintf("provider %q is not enabled", providerName))
		}
		return safeFind(ctx, p, req)
	}
	return errorResponse(ProviderNone, fmt.Sprintf("unknown provider %q", providerName))
}

// findSequential calls the effective primary, then falls back through the
// remaining providers in registration order. When everything misses, the
// primary's response is returned: it is the authoritative answer, not
// whichever fallback happened to run last.
func (s *Service) findSequential(ctx context.Context, req Request, enabled []Provider) Response {
	primary := enabled[0]
	for _, p := range enabled {
		if p.Name() == s.strategy.Primary {
			primary = p
			break
		}
	}

	primaryResp := safeFind(ctx, primary, req)
	if primaryResp.Found || !s.strategy.Fallback {
		return primaryResp
	}

	zap.L().Debug("enrich: primary missed, falling back",
		zap.String("primary", primary.Name()),
		zap.String("domain", req.Domain),
	)

	for _, p := range enabled {
		if p.Name() == primary.Name() {
			continue
		}
		if resp := safeFind(ctx, p, req); resp.Found {
			return resp
		}
	}

	return primaryResp
}

// findParallel races every enabled provider and returns the first found
// response in registration order. When none find an email the last
// response in registration order is returned; deterministic, though
// arbitrary.
func (s *Service) findParallel(ctx context.Context, req Request, enabled []Provider) Response {
	responses := make([]Response, len(enabled))

	g, gCtx := errgroup.WithContext(ctx)
	for i, p := range enabled {
		g.Go(func() error {
			responses[i] = safeFind(gCtx, p, req)
			return nil
		})
	}
	_ = g.Wait()

	for _, resp := range responses {
		if resp.Found {
			return resp
		}
	}
	return responses[len(responses)-1]
}

// Providers returns every registered provider, enabled or not, in
// registration order.
func (s *Service) Providers() []Provider {
	return s.providers
}

// AvailableProviders lists the currently enabled providers in
// registration order.
func (s *Service) AvailableProviders() []string {
	var names []string
	for _, p := range s.enabledProviders() {
		names = append(names, p.Name())
	}
	return names
}

// ProviderAvailable reports whether the named provider is enabled.
func (s *Service) ProviderAvailable(name string) bool {
	for _, p := range s.enabledProviders() {
		if p.Name() == name {
			return true
		}
	}
	return false
}

// EstimatedCost is the display cost of one lookup: the primary's rate in
// sequential mode, the sum of every enabled provider's rate in parallel
// mode (parallel pays for each attempt regardless of outcome). Per-call
// charging uses the responding provider's CostEstimate instead.
func (s *Service) EstimatedCost() float64 {
	enabled := s.enabledProviders()
	if len(enabled) == 0 {
		return 0
	}

	if s.strategy.Parallel && len(enabled) > 1 {
		var sum float64
		for _, p := range enabled {
			sum += p.CostPerLookup()
		}
		return sum
	}

	primary := enabled[0]
	for _, p := range enabled {
		if p.Name() == s.strategy.Primary {
			primary = p
			break
		}
	}
	return primary.CostPerLookup()
}

// enabledProviders re-checks enablement on every call; credentials and
// flags may differ between constructed providers and the current request.
func (s *Service) enabledProviders() []Provider {
	var enabled []Provider
	for _, p := range s.providers {
		if p.Enabled() {
			enabled = append(enabled, p)
		}
	}
	return enabled
}

// safeFind isolates one provider call: a panic degrades to an error
// response instead of aborting a parallel batch or a fallback chain.
func safeFind(ctx context.Context, p Provider, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("enrich: provider panicked",
				zap.String("provider", p.Name()),
				zap.Any("panic", r),
			)
			resp = errorResponse(p.Name(), fmt.Sprintf("provider failure: %v", r))
		}
	}()
	return p.FindEmail(ctx, req)
}
