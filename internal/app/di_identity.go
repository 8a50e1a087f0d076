package app

import (
	"fmt"

	identityRepository "github.com/clinicguard/clinicguard/internal/identity/repository"
	identityService "github.com/clinicguard/clinicguard/internal/identity/service"
	identityUseCase "github.com/clinicguard/clinicguard/internal/identity/usecase"
)

// TokenVerifier returns the session token verifier.
func (c *Container) TokenVerifier() (identityService.TokenVerifier, error) {
	var err error
	c.tokenVerifierInit.Do(func() {
		if c.config.SessionSigningKey == "" {
			err = fmt.Errorf("SESSION_SIGNING_KEY must be configured")
			c.initErrors["tokenVerifier"] = err
			return
		}
		c.tokenVerifier = identityService.NewJWTTokenVerifier(
			c.config.SessionSigningKey,
			c.config.SessionLeeway,
		)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenVerifier"]; exists {
		return nil, storedErr
	}
	return c.tokenVerifier, nil
}

// RoleStore returns the role record store based on database driver.
func (c *Container) RoleStore() (identityUseCase.RoleStore, error) {
	var err error
	c.roleStoreInit.Do(func() {
		c.roleStore, err = c.initRoleStore()
		if err != nil {
			c.initErrors["roleStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["roleStore"]; exists {
		return nil, storedErr
	}
	return c.roleStore, nil
}

// ResolverUseCase returns the identity resolver use case.
func (c *Container) ResolverUseCase() (identityUseCase.ResolverUseCase, error) {
	var err error
	c.resolverUseCaseInit.Do(func() {
		c.resolverUseCase, err = c.initResolverUseCase()
		if err != nil {
			c.initErrors["resolverUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["resolverUseCase"]; exists {
		return nil, storedErr
	}
	return c.resolverUseCase, nil
}

// initRoleStore creates the role store based on the database driver.
func (c *Container) initRoleStore() (identityUseCase.RoleStore, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for role store: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return identityRepository.NewMySQLRoleStore(db), nil
	case "postgres":
		return identityRepository.NewPostgreSQLRoleStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initResolverUseCase creates the resolver use case with all its dependencies.
func (c *Container) initResolverUseCase() (identityUseCase.ResolverUseCase, error) {
	tokenVerifier, err := c.TokenVerifier()
	if err != nil {
		return nil, fmt.Errorf("failed to get token verifier for resolver use case: %w", err)
	}

	roleStore, err := c.RoleStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get role store for resolver use case: %w", err)
	}

	recorder, err := c.AuditRecorder()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit recorder for resolver use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for resolver use case: %w", err)
	}

	useCase := identityUseCase.NewResolverUseCase(tokenVerifier, roleStore, recorder)

	return identityUseCase.NewResolverUseCaseWithMetrics(useCase, businessMetrics), nil
}
