package respond

// TaskRespond 任务响应
// 使用位置:
//   - internal/service/task/service.go: CreateTasks, GenerateTasks, ToggleTask, GetTaskList
type TaskRespond struct {
	Uuid        string `json:"uuid"`
	GroupUuid   string `json:"group_uuid"`
	UserUuid    string `json:"user_uuid"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}
