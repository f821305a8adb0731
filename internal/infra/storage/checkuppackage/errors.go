package checkuppackage

import "errors"

var (
	// ErrPackageNotFound возвращается, когда пакет обследования не найден
	ErrPackageNotFound = errors.New("checkuppackage.repository: package not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("checkuppackage.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("checkuppackage.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("checkuppackage.repository: failed to scan row")
)
