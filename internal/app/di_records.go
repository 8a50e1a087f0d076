package app

import (
	"fmt"

	recordsHTTP "github.com/clinicguard/clinicguard/internal/records/http"
	recordsRepository "github.com/clinicguard/clinicguard/internal/records/repository"
	recordsUseCase "github.com/clinicguard/clinicguard/internal/records/usecase"
)

// ChartRepository returns the patient chart repository based on database driver.
func (c *Container) ChartRepository() (recordsUseCase.ChartRepository, error) {
	var err error
	c.chartRepositoryInit.Do(func() {
		c.chartRepository, err = c.initChartRepository()
		if err != nil {
			c.initErrors["chartRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["chartRepository"]; exists {
		return nil, storedErr
	}
	return c.chartRepository, nil
}

// FileRepository returns the file record repository based on database driver.
func (c *Container) FileRepository() (recordsUseCase.FileRepository, error) {
	var err error
	c.fileRepositoryInit.Do(func() {
		c.fileRepository, err = c.initFileRepository()
		if err != nil {
			c.initErrors["fileRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fileRepository"]; exists {
		return nil, storedErr
	}
	return c.fileRepository, nil
}

// RecordsUseCase returns the guarded records use case.
func (c *Container) RecordsUseCase() (recordsUseCase.RecordsUseCase, error) {
	var err error
	c.recordsUseCaseInit.Do(func() {
		c.recordsUC, err = c.initRecordsUseCase()
		if err != nil {
			c.initErrors["recordsUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recordsUseCase"]; exists {
		return nil, storedErr
	}
	return c.recordsUC, nil
}

// RecordsHandler returns the HTTP handler for clinical record access.
func (c *Container) RecordsHandler() (*recordsHTTP.RecordsHandler, error) {
	var err error
	c.recordsHandlerInit.Do(func() {
		c.recordsHandler, err = c.initRecordsHandler()
		if err != nil {
			c.initErrors["recordsHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["recordsHandler"]; exists {
		return nil, storedErr
	}
	return c.recordsHandler, nil
}

// initChartRepository creates the chart repository based on the database driver.
func (c *Container) initChartRepository() (recordsUseCase.ChartRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for chart repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return recordsRepository.NewMySQLChartRepository(db), nil
	case "postgres":
		return recordsRepository.NewPostgreSQLChartRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initFileRepository creates the file repository based on the database driver.
func (c *Container) initFileRepository() (recordsUseCase.FileRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for file repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return recordsRepository.NewMySQLFileRepository(db), nil
	case "postgres":
		return recordsRepository.NewPostgreSQLFileRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRecordsUseCase creates the records use case with all its dependencies.
func (c *Container) initRecordsUseCase() (recordsUseCase.RecordsUseCase, error) {
	chartRepo, err := c.ChartRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get chart repository for records use case: %w", err)
	}

	fileRepo, err := c.FileRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get file repository for records use case: %w", err)
	}

	guards, err := c.GuardUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get guard use case for records use case: %w", err)
	}

	recorder, err := c.AuditRecorder()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit recorder for records use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for records use case: %w", err)
	}

	useCase := recordsUseCase.NewRecordsUseCase(chartRepo, fileRepo, guards, recorder)

	return recordsUseCase.NewRecordsUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initRecordsHandler creates the records HTTP handler.
func (c *Container) initRecordsHandler() (*recordsHTTP.RecordsHandler, error) {
	useCase, err := c.RecordsUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get records use case for records handler: %w", err)
	}

	return recordsHTTP.NewRecordsHandler(useCase, c.Logger()), nil
}
