package app

import (
	"fmt"

	authzRepository "github.com/clinicguard/clinicguard/internal/authz/repository"
	authzUseCase "github.com/clinicguard/clinicguard/internal/authz/usecase"
)

// RelationshipStore returns the doctor-patient assignment store based on database driver.
func (c *Container) RelationshipStore() (authzUseCase.RelationshipStore, error) {
	var err error
	c.relationshipStoreInit.Do(func() {
		c.relationshipStore, err = c.initRelationshipStore()
		if err != nil {
			c.initErrors["relationshipStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["relationshipStore"]; exists {
		return nil, storedErr
	}
	return c.relationshipStore, nil
}

// GuardUseCase returns the guard orchestrator.
func (c *Container) GuardUseCase() (authzUseCase.GuardUseCase, error) {
	var err error
	c.guardUseCaseInit.Do(func() {
		c.guardUseCase, err = c.initGuardUseCase()
		if err != nil {
			c.initErrors["guardUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["guardUseCase"]; exists {
		return nil, storedErr
	}
	return c.guardUseCase, nil
}

// initRelationshipStore creates the relationship store based on the database driver.
func (c *Container) initRelationshipStore() (authzUseCase.RelationshipStore, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for relationship store: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return authzRepository.NewMySQLRelationshipStore(db), nil
	case "postgres":
		return authzRepository.NewPostgreSQLRelationshipStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initGuardUseCase creates the guard use case with all its dependencies.
func (c *Container) initGuardUseCase() (authzUseCase.GuardUseCase, error) {
	relationshipStore, err := c.RelationshipStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get relationship store for guard use case: %w", err)
	}

	recorder, err := c.AuditRecorder()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit recorder for guard use case: %w", err)
	}

	return authzUseCase.NewGuardUseCase(relationshipStore, recorder), nil
}
