package filter

// DefaultConfig returns a config tuned for an AI-infrastructure job
// search in first-tier Chinese cities. Every field can be overridden from
// the yaml config file.
func DefaultConfig() Config {
	return Config{
		GlobalThreshold: 0.3,
		BasicWeight:     0.6,
		AdvancedWeight:  0.4,
		Tiers: TierSpec{
			Strong:       0.80,
			Recommended:  0.65,
			Considerable: 0.50,
		},

		Salary: SalarySpec{
			Spec:    Spec{Enabled: true, Weight: 0.3, IsHardFilter: true},
			HardMin: 15,
			HardMax: 80,
			Target:  30,
		},
		Location: LocationSpec{
			Spec:       Spec{Enabled: true, Weight: 0.2, IsHardFilter: true},
			Preferred:  []string{"北京", "上海", "深圳"},
			Acceptable: []string{"杭州", "广州", "成都", "武汉", "西安", "南京"},
			Rejected:   []string{},
		},
		Experience: ExperienceSpec{
			Spec:      Spec{Enabled: true, Weight: 0.3, IsHardFilter: false},
			UserYears: 1,
		},
		Graduation: GraduationSpec{
			Spec:           Spec{Enabled: true, Weight: 0.1, IsHardFilter: true},
			UserGraduation: "2023-12",
		},
		Deadline: DeadlineSpec{
			Spec: Spec{Enabled: true, Weight: 0.1, IsHardFilter: true},
		},
		Company: CompanySpec{
			Spec: Spec{Enabled: true, Weight: 0.4, IsHardFilter: false},
			Tier1: []string{
				"华为", "腾讯", "字节跳动", "阿里巴巴", "百度", "美团",
				"滴滴", "小米", "京东", "网易",
			},
			Tier2: []string{
				"商汤", "旷视", "地平线", "寒武纪", "智谱", "月之暗面",
				"MiniMax", "零一万物", "百川智能",
			},
			Tier3: []string{
				"快手", "B站", "哔哩哔哩", "携程", "贝壳", "小红书",
				"蔚来", "理想", "小鹏",
			},
		},
		Domain: DomainSpec{
			Spec: Spec{Enabled: true, Weight: 0.6, IsHardFilter: false},
			Core: []string{
				"大模型", "LLM", "GPT", "AIGC", "生成式AI", "AI Infra",
				"模型训练", "模型推理",
			},
			AI: []string{
				"机器学习", "深度学习", "人工智能", "算法工程",
				"计算机视觉", "自然语言处理", "推荐系统",
			},
			Related: []string{
				"算法", "数据科学", "数据挖掘", "搜索", "风控",
			},
		},
	}
}
