package database

import (
	"fmt"
	"log/slog"

	"github.com/samcomo/dbz-api-server/internal/config"
	"github.com/samcomo/dbz-api-server/internal/model"
	"gorm.io/gorm"
)

// managedModels in creation order; tables are dropped in reverse (FK 참조 순서)
func managedModels() []any {
	return []any{
		&model.Member{},
	}
}

// Migrate drops and recreates every managed table when DB_AUTO_MIGRATE=true.
// Blocked in production.
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if !cfg.Database.IsAutoMigrate {
		slog.Info("⏭️  데이터베이스 마이그레이션 비활성화됨",
			"auto_migrate", false, "env", cfg.App.Env,
		)
		return nil
	}

	if cfg.App.Env == "prod" || cfg.App.Env == "production" {
		return fmt.Errorf("🚨 PRODUCTION 환경에서는 DB_AUTO_MIGRATE=true를 사용할 수 없습니다! 데이터 손실 방지를 위해 차단됨")
	}

	slog.Warn("🔧 데이터베이스 마이그레이션 시작 - 모든 테이블이 삭제되고 재생성됩니다!",
		"auto_migrate", true, "env", cfg.App.Env, "driver", cfg.Database.Driver,
	)

	models := managedModels()

	slog.Info("🗑️  기존 테이블 삭제 중...")
	for i := len(models) - 1; i >= 0; i-- {
		dropTable(db, cfg.Database.Driver, models[i])
	}

	slog.Info("📦 새 테이블 생성 중...")
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("%T 마이그레이션 실패: %w", m, err)
		}
		slog.Debug("테이블 생성됨", "model", fmt.Sprintf("%T", m))
	}

	slog.Info("✅ 마이그레이션 완료!")
	return nil
}

// dropTable ignores failures: a missing table is the normal first-run case.
func dropTable(db *gorm.DB, driver string, m any) {
	if driver != config.DriverOracle {
		if err := db.Migrator().DropTable(m); err != nil {
			slog.Debug("테이블 삭제 실패", "model", fmt.Sprintf("%T", m), "error", err)
		}
		return
	}

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(m); err != nil {
		slog.Debug("모델 파싱 실패", "model", fmt.Sprintf("%T", m), "error", err)
		return
	}
	tableName := stmt.Schema.Table

	var count int64
	db.Raw("SELECT COUNT(*) FROM USER_TABLES WHERE UPPER(TABLE_NAME) = UPPER(?)", tableName).Scan(&count)
	if count == 0 {
		return
	}

	// Oracle: DROP TABLE with CASCADE CONSTRAINTS
	if err := db.Exec(fmt.Sprintf("DROP TABLE %s CASCADE CONSTRAINTS", tableName)).Error; err != nil {
		slog.Debug("테이블 삭제 실패", "table", tableName, "error", err)
		return
	}
	slog.Debug("테이블 삭제 성공", "table", tableName)
}
