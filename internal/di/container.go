// Package di provides dependency injection container for managing service lifecycle and dependencies.
package di

import (
	"context"
	"math/rand/v2"
	"sync"

	"verbtrainer/internal/config"
	"verbtrainer/internal/observability"
	"verbtrainer/internal/serviceinterfaces"
	"verbtrainer/internal/services"
	contextutils "verbtrainer/internal/utils"

	"go.opentelemetry.io/otel"
)

// ServiceContainerInterface defines the interface for service containers
type ServiceContainerInterface interface {
	GetService(name string) (interface{}, error)
	GetPracticeService() (services.PracticeServiceInterface, error)
	GetQuizService() (services.QuizServiceInterface, error)
	GetTranslationService() (services.TranslationServiceInterface, error)
	GetTranslationProxy() (services.TranslationProxyInterface, error)
	GetCatalog() (*services.CatalogBundle, error)
	GetConfig() *config.Config
	GetLogger() *observability.Logger
	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// ServiceContainer manages all service dependencies and lifecycle
type ServiceContainer struct {
	cfg           *config.Config
	logger        *observability.Logger
	services      map[string]interface{}
	mu            sync.RWMutex
	shutdownFuncs []func(context.Context) error
}

// NewServiceContainer creates a new dependency injection container
func NewServiceContainer(cfg *config.Config, logger *observability.Logger) *ServiceContainer {
	return &ServiceContainer{
		cfg:      cfg,
		logger:   logger,
		services: make(map[string]interface{}),
	}
}

// Initialize loads the catalog and wires every service on top of it
func (sc *ServiceContainer) Initialize(ctx context.Context) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	bundle, err := services.NewCatalogLoader(sc.logger).Load(ctx, sc.cfg.Catalog)
	if err != nil {
		return contextutils.WrapErrorf(err, "failed to load verb catalog")
	}
	sc.services["catalog"] = bundle

	if err := sc.initializeServices(ctx, bundle); err != nil {
		_ = sc.cleanup(ctx)
		return err
	}

	if err := sc.startupServices(ctx); err != nil {
		_ = sc.cleanup(ctx)
		return contextutils.WrapErrorf(err, "failed to startup services")
	}

	return nil
}

// GetService retrieves a service by name with type assertion
func (sc *ServiceContainer) GetService(name string) (interface{}, error) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	service, exists := sc.services[name]
	if !exists {
		return nil, contextutils.ErrorWithContextf("service %s not found", name)
	}
	return service, nil
}

// GetServiceAs performs type-safe service retrieval
func GetServiceAs[T any](sc *ServiceContainer, name string) (T, error) {
	var zero T
	service, err := sc.GetService(name)
	if err != nil {
		return zero, err
	}

	typed, ok := service.(T)
	if !ok {
		return zero, contextutils.ErrorWithContextf("service %s is not of expected type %T", name, zero)
	}
	return typed, nil
}

// GetPracticeService returns the practice service
func (sc *ServiceContainer) GetPracticeService() (services.PracticeServiceInterface, error) {
	return GetServiceAs[services.PracticeServiceInterface](sc, "practice")
}

// GetQuizService returns the quiz service
func (sc *ServiceContainer) GetQuizService() (services.QuizServiceInterface, error) {
	return GetServiceAs[services.QuizServiceInterface](sc, "quiz")
}

// GetTranslationService returns the configured translation provider
func (sc *ServiceContainer) GetTranslationService() (services.TranslationServiceInterface, error) {
	return GetServiceAs[services.TranslationServiceInterface](sc, "translation")
}

// GetTranslationProxy returns the translation proxy
func (sc *ServiceContainer) GetTranslationProxy() (services.TranslationProxyInterface, error) {
	return GetServiceAs[services.TranslationProxyInterface](sc, "translation_proxy")
}

// GetCatalog returns the loaded catalog bundle
func (sc *ServiceContainer) GetCatalog() (*services.CatalogBundle, error) {
	return GetServiceAs[*services.CatalogBundle](sc, "catalog")
}

// GetConfig returns the configuration
func (sc *ServiceContainer) GetConfig() *config.Config {
	return sc.cfg
}

// GetLogger returns the logger
func (sc *ServiceContainer) GetLogger() *observability.Logger {
	return sc.logger
}

// Shutdown gracefully shuts down all services
func (sc *ServiceContainer) Shutdown(ctx context.Context) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	return sc.cleanup(ctx)
}

// startupServices starts every service implementing Starter
func (sc *ServiceContainer) startupServices(ctx context.Context) error {
	for name, service := range sc.services {
		if lifecycleService, ok := service.(serviceinterfaces.Starter); ok {
			sc.logger.Info(ctx, "Starting service", map[string]interface{}{"service": name})
			if err := lifecycleService.Startup(ctx); err != nil {
				return contextutils.WrapErrorf(err, "failed to startup service %s", name)
			}
		}
	}
	return nil
}

// cleanup handles shutdown of all services
func (sc *ServiceContainer) cleanup(ctx context.Context) error {
	var errors []error

	for name, service := range sc.services {
		if lifecycleService, ok := service.(serviceinterfaces.Stopper); ok {
			sc.logger.Info(ctx, "Shutting down service", map[string]interface{}{"service": name})
			if err := lifecycleService.Shutdown(ctx); err != nil {
				sc.logger.Error(ctx, "Failed to shutdown service", err, map[string]interface{}{"service": name})
				errors = append(errors, contextutils.WrapErrorf(err, "service %s shutdown failed", name))
			}
		}
	}

	for i := len(sc.shutdownFuncs) - 1; i >= 0; i-- {
		if err := sc.shutdownFuncs[i](ctx); err != nil {
			errors = append(errors, err)
		}
	}
	sc.shutdownFuncs = nil

	if len(errors) > 0 {
		return contextutils.ErrorWithContextf("shutdown errors: %v", errors)
	}
	return nil
}

// initializeServices sets up all service dependencies
func (sc *ServiceContainer) initializeServices(ctx context.Context, bundle *services.CatalogBundle) error {
	metrics, err := observability.NewTrainerMetrics(otel.GetMeterProvider())
	if err != nil {
		return contextutils.WrapErrorf(err, "failed to create metrics")
	}

	seed := sc.cfg.Quiz.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := services.NewRandomSource(seed)

	// The generator and resolver are pure and shared by practice and quiz
	generator := services.NewPhraseGenerator(bundle.Irregulars)
	resolver := services.NewPhraseResolver(bundle.Verbs, generator)

	sc.services["practice"] = services.NewPracticeService(bundle, generator, resolver, rng, metrics, sc.logger)

	engine := services.NewQuizEngine(bundle.Verbs, generator, rng)
	sc.services["quiz"] = services.NewQuizService(engine, metrics, sc.logger)

	provider := services.NewTranslationService(sc.cfg, sc.logger)
	sc.services["translation"] = provider
	sc.services["translation_proxy"] = services.NewTranslationProxy(sc.cfg.Translation, provider, metrics, sc.logger)

	sc.logger.Info(ctx, "Services initialized", map[string]interface{}{
		"verbs":      bundle.Verbs.Len(),
		"prompts":    bundle.Prompts.Len(),
		"quiz_seed":  seed,
		"translator": sc.cfg.Translation.DefaultProvider,
	})
	return nil
}
