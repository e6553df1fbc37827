package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"critter_crew_server/pkg/errorx"
)

// withForUpdate 给查询加上 SELECT ... FOR UPDATE 行锁
// 只在 MySQL 方言下生效：InnoDB REPEATABLE READ 下并发事务各自按旧快照
// 统计会互相覆盖，必须先锁行再读；SQLite 写事务天然串行，也不支持该语法
func withForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "mysql" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

// ==================== 错误包装辅助函数 ====================

// wrapDBError 包装数据库错误
// 根据错误类型返回不同的错误码：
//   - ErrRecordNotFound -> CodeNotFound
//   - 其他错误 -> CodeDBError
//
// 唯一键冲突也走 CodeDBError，但保留底层 gorm.ErrDuplicatedKey，
// 业务层通过 IsDuplicateKey 区分
func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrap(err, errorx.CodeNotFound, msg)
	}
	return errorx.Wrap(err, errorx.CodeDBError, msg)
}

// wrapDBErrorf 包装数据库错误（支持格式化消息）
func wrapDBErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrapf(err, errorx.CodeNotFound, format, args...)
	}
	return errorx.Wrapf(err, errorx.CodeDBError, format, args...)
}

// IsDuplicateKey 判断错误链中是否包含唯一键冲突
// 依赖 gorm 的 TranslateError 把各方言的冲突错误统一成 gorm.ErrDuplicatedKey
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
