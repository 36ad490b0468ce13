package service

// ============================================================================
// 消息键
// ============================================================================
//
// 核心边界上的所有失败（输入校验、查无记录、配置错误、存储错误）
// 都折叠成同一种带消息键的结果，由调用方查本地化表后呈现。
// admin_ 前缀是静态配置不一致等面向管理员的错误，不是用户输入问题；
// db_ 前缀的存储错误只记日志，不把内部细节透给用户。
// ============================================================================

const (
	KeyInvalidCommand       = "invalid_command"
	KeyInvalidParamsLength  = "invalid_params_length"
	KeyInvalidParamsValue   = "invalid_params_value"
	KeyInvalidTag           = "invalid_tag"
	KeyInvalidAmount        = "invalid_amount"
	KeyInvalidConfigs       = "admin_error_invalid_configs"
	KeyInvalidMultiLineLen  = "user_error_invalid_multi_line_length"
	KeyInvalidMultiLineType = "user_error_invalid_multi_line_type"
	KeyNoRecords            = "no_records"
	KeyInvalidRecordAction  = "admin_error_invalid_record_action"
	KeyInvalidRecordType    = "admin_error_invalid_record_type"
	KeyDBQueryFailed        = "db_error_sql_query_execution_failed"

	KeyCreateSuccess = "create_success"
	KeyDeleteSuccess = "delete_success"
)

// Failure 带消息键的业务失败
type Failure struct {
	Key string
}

func (f *Failure) Error() string {
	return f.Key
}

func NewFailure(key string) *Failure {
	return &Failure{Key: key}
}
