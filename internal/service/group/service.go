package group

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"critter_crew_server/internal/dao/mysql/repository"
	myredis "critter_crew_server/internal/dao/redis"
	"critter_crew_server/internal/dto/request"
	"critter_crew_server/internal/dto/respond"
	"critter_crew_server/internal/model"
	"critter_crew_server/pkg/constants"
	"critter_crew_server/pkg/errorx"
	"critter_crew_server/pkg/util/random"
)

// groupService 小组业务逻辑实现
// 通过构造函数注入 Repository 和 Cache 依赖
type groupService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewGroupService 构造函数，注入所有依赖
func NewGroupService(repos *repository.Repositories, cacheService myredis.AsyncCacheService) *groupService {
	return &groupService{
		repos: repos,
		cache: cacheService,
	}
}

// toGroupInfoRespond 把实体转为响应对象
func toGroupInfoRespond(g *model.GroupInfo) *respond.GetGroupInfoRespond {
	return &respond.GetGroupInfoRespond{
		Uuid:         g.Uuid,
		Name:         g.Name,
		InviteCode:   g.InviteCode,
		OwnerId:      g.OwnerId,
		MemberCnt:    g.MemberCnt,
		CreatureMood: g.CreatureMood,
	}
}

// CreateGroup 创建小组
// 小组行和创建者的成员行在同一事务内落库：
// 任何一步失败整体回滚，不会出现没有成员的小组
func (g *groupService) CreateGroup(req request.CreateGroupRequest, ownerId string) (*respond.GetGroupInfoRespond, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "小组名称不能为空")
	}

	// 预检查只为给出友好报错，真正的守卫是 group_member.user_uuid 唯一索引
	if _, err := g.repos.GroupMember.FindByUserUuid(ownerId); err == nil {
		return nil, errorx.ErrAlreadyInGroup
	} else if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error("查询创建者成员关系失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 邀请码唯一性以插入为准：撞唯一索引就换码重试，次数耗尽视为
	// 字符集/长度相对小组规模配置不足，直接上抛配置级错误
	for attempt := 0; attempt < constants.InviteCodeMaxAttempts; attempt++ {
		group := model.GroupInfo{
			Uuid:         fmt.Sprintf("G%s", random.GetNowAndLenRandomString(11)),
			Name:         name,
			InviteCode:   random.GetInviteCode(),
			OwnerId:      ownerId,
			MemberCnt:    1,
			CreatureMood: constants.NeutralMood,
		}

		err := g.repos.Transaction(func(txRepos *repository.Repositories) error {
			if err := txRepos.Group.CreateGroup(&group); err != nil {
				// 这里的唯一键冲突只可能来自邀请码（uuid 含时间戳随机串，撞车概率可忽略）
				return err
			}
			member := model.GroupMember{
				GroupUuid: group.Uuid,
				UserUuid:  ownerId,
				Role:      2,
			}
			if err := txRepos.GroupMember.CreateGroupMember(&member); err != nil {
				if repository.IsDuplicateKey(err) {
					// 并发下创建者刚在别处入组，回滚小组行
					return errorx.Wrap(err, errorx.CodeAlreadyInGroup, "您已在一个小组中，无法再次创建或加入")
				}
				return err
			}
			return nil
		})

		if err == nil {
			return toGroupInfoRespond(&group), nil
		}
		if errorx.GetCode(err) == errorx.CodeAlreadyInGroup {
			return nil, err
		}
		if repository.IsDuplicateKey(err) {
			zap.L().Warn("邀请码冲突，换码重试",
				zap.String("inviteCode", group.InviteCode),
				zap.Int("attempt", attempt+1))
			continue
		}
		zap.L().Error("创建小组失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return nil, errorx.Newf(errorx.CodeCodeExhausted,
		"连续 %d 次邀请码冲突，字符集或长度相对小组数量已不足", constants.InviteCodeMaxAttempts)
}

// JoinGroupByCode 通过邀请码加入小组
// 查码和插入成员视作一个逻辑事务：成员行插入撞 user_uuid 唯一索引
// 即判定为重复加入，避免并发下一个用户拿到两条成员关系
func (g *groupService) JoinGroupByCode(code, userId string) (*respond.GetGroupInfoRespond, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, errorx.ErrInvalidCode
	}

	groupInfo, err := g.repos.Group.FindByInviteCode(code)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.ErrInvalidCode
		}
		zap.L().Error("按邀请码查询小组失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	err = g.repos.Transaction(func(txRepos *repository.Repositories) error {
		member := model.GroupMember{
			GroupUuid: groupInfo.Uuid,
			UserUuid:  userId,
			Role:      1,
		}
		if err := txRepos.GroupMember.CreateGroupMember(&member); err != nil {
			if repository.IsDuplicateKey(err) {
				// 已有成员关系，包括重复加入同一个小组
				return errorx.Wrap(err, errorx.CodeAlreadyInGroup, "您已在一个小组中，无法再次创建或加入")
			}
			return err
		}
		return txRepos.Group.IncrementMemberCount(groupInfo.Uuid)
	})

	if err != nil {
		if errorx.GetCode(err) == errorx.CodeAlreadyInGroup {
			return nil, err
		}
		zap.L().Error("加入小组失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 提交后、确认前同步清理该小组的全部缓存（详情 + 成员列表）：
	// 异步清理会让紧随其后的查询读到不含新成员的旧数据
	if err := g.cache.DeleteByPattern(context.Background(), "group_*_"+groupInfo.Uuid); err != nil {
		zap.L().Error("清理小组缓存失败", zap.String("groupUuid", groupInfo.Uuid), zap.Error(err))
	}

	groupInfo.MemberCnt++
	return toGroupInfoRespond(groupInfo), nil
}

// GetGroupInfo 获取小组详情
func (g *groupService) GetGroupInfo(groupId string) (*respond.GetGroupInfoRespond, error) {
	cacheKey := "group_info_" + groupId

	// 1. 尝试从缓存获取
	rspString, err := g.cache.Get(context.Background(), cacheKey)
	if err == nil && rspString != "" {
		var rsp respond.GetGroupInfoRespond
		if err := json.Unmarshal([]byte(rspString), &rsp); err == nil {
			return &rsp, nil
		}
		// 反序列化失败视为脏数据，降级查库
		zap.L().Warn("Unmarshal group info cache failed, fallback to DB", zap.String("groupId", groupId), zap.Error(err))
	} else if err != nil {
		// Redis 异常（非 Key 不存在），记录错误并降级查库
		zap.L().Error("Get group info cache error", zap.String("groupId", groupId), zap.Error(err))
	}

	// 2. 查询数据库 (Source of Truth)
	groupInfo, err := g.repos.Group.FindByUuid(groupId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "小组不存在")
		}
		zap.L().Error("Find group by uuid error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	cacheRsp := toGroupInfoRespond(groupInfo)

	// 3. 异步回写缓存
	g.cache.SubmitTask(func() {
		rspBytes, err := json.Marshal(cacheRsp)
		if err != nil {
			zap.L().Error("Marshal group info for cache error", zap.Error(err))
			return
		}
		if err := g.cache.Set(context.Background(), cacheKey, string(rspBytes), time.Minute*30); err != nil {
			zap.L().Error("Set group info cache error", zap.Error(err))
		}
	})

	return cacheRsp, nil
}

// GetMyGroup 获取用户当前所在小组
// 没有成员关系时返回 (nil, nil)，由 Handler 返回空数据，前端据此引导去建群/加群
func (g *groupService) GetMyGroup(userId string) (*respond.GetGroupInfoRespond, error) {
	member, err := g.repos.GroupMember.FindByUserUuid(userId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, nil
		}
		zap.L().Error("查询用户成员关系失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return g.GetGroupInfo(member.GroupUuid)
}

// GetGroupMemberList 获取小组成员列表
func (g *groupService) GetGroupMemberList(groupId string) ([]respond.GetGroupMemberListRespond, error) {
	cacheKey := "group_memberlist_" + groupId

	// 1. 尝试从缓存获取 (Happy Path)
	rspString, err := g.cache.Get(context.Background(), cacheKey)
	if err == nil && rspString != "" {
		var memberListRsp []respond.GetGroupMemberListRespond
		if err := json.Unmarshal([]byte(rspString), &memberListRsp); err == nil {
			return memberListRsp, nil
		}
		zap.L().Error("Unmarshal member list cache error", zap.Error(err))
	} else if err != nil {
		zap.L().Error("Redis get error", zap.Error(err))
	}

	// 2. 缓存未命中 或 缓存出错 -> 查询数据库
	members, err := g.repos.GroupMember.FindMembersWithUserInfo(groupId)
	if err != nil {
		zap.L().Error("Find group members from DB error", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 使用 make 初始化 len=0，确保序列化后是 [] 而不是 null
	memberListRsp := make([]respond.GetGroupMemberListRespond, 0, len(members))
	for _, m := range members {
		memberListRsp = append(memberListRsp, respond.GetGroupMemberListRespond{
			UserId:   m.UserId,
			Username: m.Username,
			Avatar:   m.Avatar,
			Role:     m.Role,
		})
	}

	// 3. 回写缓存 (异步)
	g.cache.SubmitTask(func() {
		rspBytes, err := json.Marshal(memberListRsp)
		if err != nil {
			zap.L().Error("Marshal member list error", zap.Error(err))
			return
		}
		if err := g.cache.Set(context.Background(), cacheKey, string(rspBytes), time.Minute*30); err != nil {
			zap.L().Error("Set cache error", zap.Error(err))
		}
	})

	return memberListRsp, nil
}
