package keywords

import "strings"

// Category labels, carried from the original analyzer's literal vocabulary
// buckets (see DESIGN.md). Order matters: a token is assigned to the first
// category whose vocabulary it matches.
const (
	CategoryDefect      = "问题缺陷类"
	CategoryRequirement = "需求功能类"
	CategoryTech        = "技术实现类"
	CategoryRole        = "角色人员类"
	CategoryProcess     = "业务流程类"
	CategoryStatus      = "状态描述类"
)

var categoryOrder = []string{
	CategoryDefect, CategoryRequirement, CategoryTech, CategoryRole, CategoryProcess, CategoryStatus,
}

var categoryVocab = map[string][]string{
	CategoryDefect: {
		"问题", "解决", "修复", "bug", "Bug", "BUG", "缺陷", "错误", "异常", "故障",
		"失败", "崩溃", "阻塞", "影响", "风险", "漏洞",
	},
	CategoryRequirement: {
		"需求", "功能", "特性", "优化", "改进", "新增", "删除", "变更",
		"升级", "扩展", "配置", "设置",
	},
	CategoryTech: {
		"模块", "系统", "平台", "服务", "接口", "api", "API", "数据库", "缓存",
		"算法", "框架", "代码", "部署", "服务器", "网络", "安全", "性能", "架构",
		"进行", "实现", "完成", "处理", "操作", "执行", "运行", "使用", "采用",
		"通过", "基于", "根据", "相关", "关于", "对于", "针对", "关联", "涉及",
		"产生", "出现", "发生", "存在", "位于",
	},
	CategoryRole: {
		"用户", "客户", "管理员", "开发", "测试", "运维", "产品", "设计师",
		"分析师", "架构师", "项目经理",
	},
	CategoryProcess: {
		"业务", "流程", "步骤", "环节", "阶段", "过程", "方案", "策略",
		"规则", "逻辑", "条件", "判断", "验证", "审核",
	},
	CategoryStatus: {
		"完成", "待处理", "进行中", "暂停", "取消", "成功", "失败",
		"正常", "异常", "有效", "无效", "开启", "关闭", "启用", "禁用",
	},
}

// categorize returns, for each category whose vocabulary matches at least
// one of the given high-frequency tokens (ordered by categoryOrder, ties
// within a category broken by input order), the matching subset of tokens.
// A token goes to the first matching category only, mirroring the
// original's if/elif chain.
func categorize(tokens []string) map[string][]string {
	result := make(map[string][]string)
	for _, token := range tokens {
		for _, cat := range categoryOrder {
			if matchesAny(token, categoryVocab[cat]) {
				result[cat] = append(result[cat], token)
				break
			}
		}
	}
	return result
}

func matchesAny(token string, vocab []string) bool {
	lower := strings.ToLower(token)
	for _, v := range vocab {
		if strings.Contains(lower, strings.ToLower(v)) {
			return true
		}
	}
	return false
}
