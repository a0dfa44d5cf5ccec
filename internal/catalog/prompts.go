package catalog

import "slices"

// PromptTemplate is a reusable prompt with bracketed placeholders.
type PromptTemplate struct {
	Tag         string `json:"tag"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Description string `json:"desc"`
}

// Prompts returns a copy of the prompt library in display order.
func Prompts() []PromptTemplate {
	return slices.Clone(promptTemplates)
}

var promptTemplates = []PromptTemplate{
	{
		Tag:         "万能通用",
		Title:       "RTF 标准提问法",
		Content:     "[角色 Role]: 你是资深产品经理\n[任务 Task]: 请分析这份竞品报告\n[格式 Format]: 输出为带图表的 Markdown 格式",
		Description: "最基础也最有效的结构：指定角色、明确任务、规定格式。",
	},
	{
		Tag:         "复杂任务",
		Title:       "BROKE 深度思考法",
		Content:     "[背景 Background]: 我们正在开发一款AI应用...\n[角色 Role]: 你是首席架构师\n[目标 Objectives]: 设计后端架构\n[关键结果 Key Results]: 高并发、低延迟\n[演变 Evolve]: 如果用户量翻倍，架构如何调整？",
		Description: "适用于需要深度推理和多步规划的复杂任务。",
	},
	{
		Tag:         "精准控制",
		Title:       "C.R.E.A.T.E 框架",
		Content:     "[Context]: 上下文背景\n[Role]: 设定AI身份\n[Explicit]: 明确具体的限制条件\n[Action]: 需要执行的动作\n[Tone]: 语调（专业/幽默/严肃）\n[Example]: 给出一个参考范例",
		Description: "目前公认生成质量最高的精细化控制框架。",
	},
	{
		Tag:         "Video Gen",
		Title:       "Runway/Sora 电影级公式",
		Content:     "[主体描述] + [环境背景] + [摄影机运动 Camera Movement] + [光线/氛围] + [风格 Style]\n例如: A wide shot of a cyberpunk city street at night, neon reflection on wet ground, drone camera slowly flying forward, cinematic lighting, film grain.",
		Description: "生成高质量视频的核心要素：运镜、光影与风格。",
	},
	{
		Tag:         "Video Gen",
		Title:       "数字人口播公式 (HeyGen)",
		Content:     "[角色形象]: 穿着西装的专业新闻主播\n[背景]: 现代化的演播室大屏幕\n[表情/动作]: 面带微笑，手势自然，眼神注视镜头\n[脚本内容]: (粘贴你的台词)",
		Description: "用于生成高质量 AI 数字人视频的脚本结构。",
	},
	{
		Tag:         "Midjourney",
		Title:       "MJ 摄影写实公式",
		Content:     "/imagine prompt: [主体描述] + [环境背景] + [摄影角度/镜头] + [光线条件] + [相机型号/胶片类型] --ar 16:9 --v 6.0 --style raw",
		Description: "生成照片级逼真图像的黄金公式。",
	},
	{
		Tag:         "Stable Diff",
		Title:       "SD 正负向起手式",
		Content:     "Positive: (masterpiece, best quality:1.2), [Subject], [Style Tags], 4k, 8k\nNegative: (worst quality, low quality:1.4), bad anatomy, watermark, text",
		Description: "Stable Diffusion 必备的起手质量控制词。",
	},
	{
		Tag:         "Coding",
		Title:       "代码专家 Debug",
		Content:     "你是一个 [语言] 专家。请分析以下代码：\n1. 解释这段代码的功能\n2. 指出潜在的 Bug 或性能瓶颈\n3. 给出优化后的代码并添加注释\n[粘贴代码]",
		Description: "让 AI 成为你的结对编程导师。",
	},
	{
		Tag:         "Academic",
		Title:       "论文润色 (降重)",
		Content:     "请作为[学科]领域的审稿人，对以下段落进行润色。\n要求：保持原意，提升学术性，使用更专业的词汇，调整句式结构以降低查重率。",
		Description: "学术论文投稿前的最后优化。",
	},
	{
		Tag:         "Marketing",
		Title:       "小红书爆款公式",
		Content:     "[标题]: 包含emoji，制造悬念/焦虑/惊喜\n[正文]: 痛点场景 + 解决方案 + 情绪价值\n[结尾]: 引导互动 (点赞/收藏)\n[标签]: #热门话题",
		Description: "符合算法推荐逻辑的社交媒体文案结构。",
	},
	{
		Tag:         "Business",
		Title:       "SWOT 战略分析",
		Content:     "请对 [公司/产品] 进行 SWOT 分析：\nStrengths (优势)\nWeaknesses (劣势)\nOpportunities (机会)\nThreats (威胁)\n并基于分析给出3条战略建议。",
		Description: "商业计划书必备的分析框架。",
	},
	{
		Tag:         "Learning",
		Title:       "费曼学习法",
		Content:     "请用“费曼技巧”给我讲解 [复杂概念]。\n要求：用像给12岁孩子讲故事一样的简单语言，使用类比，不要使用行话。",
		Description: "快速搞懂一个陌生领域的最佳捷径。",
	},
}
