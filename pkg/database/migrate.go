package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// 迁移脚本随二进制一起发布，部署时无需额外携带 SQL 文件
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 启动时将数据库结构升级到最新版本
// 班级/幼儿/管理员的建表脚本见 migrations/，
// 已应用的版本由 golang-migrate 的 schema_migrations 表跟踪
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("读取内嵌迁移脚本失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("初始化 postgres 迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("创建迁移实例失败: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("数据库结构已是最新，本次无迁移")
		return nil
	case err != nil:
		return fmt.Errorf("应用迁移失败: %w", err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		logger.Warn("迁移后处于 dirty 状态，需要人工介入", zap.Uint("version", version))
	} else {
		logger.Info("数据库结构迁移完成", zap.Uint("version", version))
	}

	return nil
}
