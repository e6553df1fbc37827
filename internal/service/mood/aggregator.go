// Package mood 实现小组心情聚合
// 心情值是当前任务完成率的纯函数快照，没有衰减或动量逻辑：
// 每次任务变动后整体重算，而不是维护增量计数，保证并发切换最终收敛到正确比率
package mood

import (
	"math"

	"critter_crew_server/internal/dao/mysql/repository"
	"critter_crew_server/pkg/constants"
)

// Compute 由任务完成数和总数计算心情值
// 纯函数：total == 0 时返回中性默认值，避免除零；结果收敛到 [0,100]
func Compute(completed, total int64) int {
	if total == 0 {
		return constants.NeutralMood
	}
	mood := int(math.Round(float64(completed) / float64(total) * 100))
	if mood < constants.MoodMin {
		mood = constants.MoodMin
	}
	if mood > constants.MoodMax {
		mood = constants.MoodMax
	}
	return mood
}

// Recompute 读取小组全量任务快照，重算并写回心情值
// 在任务变动的同一事务内调用（传入事务版 Repositories），且调用方
// 需已持有组行锁（FindByUuidForUpdate），否则并发变动事务各自按
// 旧快照统计，后提交者会覆盖掉前者已确认的切换
func Recompute(repos *repository.Repositories, groupUuid string) (int, error) {
	total, completed, err := repos.Task.CountByGroupUuid(groupUuid)
	if err != nil {
		return 0, err
	}
	newMood := Compute(completed, total)
	if err := repos.Group.UpdateMood(groupUuid, newMood); err != nil {
		return 0, err
	}
	return newMood, nil
}
