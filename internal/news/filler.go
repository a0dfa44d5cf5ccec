package news

// FillerEntry is a pre-written item used when live sources under-deliver.
type FillerEntry struct {
	Source      string
	Category    Category
	Title       string
	Description string
	URL         string
}

// FillerReplicas is how many times the catalogue is walked.
const FillerReplicas = 5

var FillerCatalogue = []FillerEntry{
	{
		Source: "OpenAI", Category: CategoryApp, Title: "OpenAI o1 模型预览版上线",
		Description: "OpenAI 发布的全新 o1 系列模型（原草莓项目），引入了‘思维链’推理技术。这意味着模型在回答问题前会像人类一样进行深思熟虑，从而在复杂的数学、编程和科学推理任务上表现出卓越的能力，准确率大幅超越 GPT-4o。",
		URL:         "https://openai.com",
	},
	{
		Source: "Meta", Category: CategoryDev, Title: "Llama 3.2 开源多模态模型",
		Description: "Meta 再次震撼开源界！Llama 3.2 是首个能够同时处理图像和文本的轻量级开源模型。它包含 11B 和 90B 两个版本，甚至还有能在手机端流畅运行的 1B/3B 版本，为边缘计算和移动端 AI 应用开发打开了新的大门。",
		URL:         "https://llama.meta.com",
	},
	{
		Source: "Anthropic", Category: CategoryApp, Title: "Claude 3.5 Sonnet 重大更新",
		Description: "Anthropic 发布了 Claude 3.5 Sonnet 的升级版，这次更新引入了革命性的 'Computer Use' 功能，允许 AI 像人一样控制鼠标和键盘操作电脑。此外，其代码生成能力和逻辑推理速度也得到了进一步优化，是目前开发者首选的编程助手。",
		URL:         "https://claude.ai",
	},
	{
		Source: "Runway", Category: CategoryVideo, Title: "Gen-3 Alpha 视频生成全面开放",
		Description: "好莱坞级别的 AI 视频生成工具 Runway Gen-3 Alpha 现已向公众开放。它支持极其精准的运动控制（Motion Brush）和运镜指令，能够生成长达 10 秒的高清、连贯视频，光影效果和物理规律模拟几乎达到了以假乱真的地步。",
		URL:         "https://runwayml.com",
	},
	{
		Source: "Cursor", Category: CategoryApp, Title: "Cursor 编辑器推出 Composer",
		Description: "VS Code 的最强竞争对手 Cursor 推出了 'Composer' 功能。它允许用户在一个窗口中同时编辑多个文件，通过自然语言指令重构整个项目的代码结构。这不仅是一个代码补全工具，更像是一个能够理解整个工程架构的 AI 结对程序员。",
		URL:         "https://cursor.com",
	},
	{
		Source: "BlackForest", Category: CategoryImage, Title: "Flux.1 Pro 图像模型发布",
		Description: "由原 Stable Diffusion 核心团队打造的 FLUX.1 横空出世。该模型在文字渲染（Text Rendering）和手指细节处理上完爆了 Midjourney v6。作为目前最强的开源生图模型，它支持本地部署，并且对提示词的语义理解达到了新的高度。",
		URL:         "https://blackforestlabs.ai",
	},
	{
		Source: "Google", Category: CategoryApp, Title: "NotebookLM 音频概览功能",
		Description: "Google 的 NotebookLM 增加了一个病毒式传播的功能：Audio Overview。它可以将你上传的任何 PDF、文档或链接，一键转化成一段两名 AI 主持人之间的精彩播客对话。语气自然、充满幽默感，是学习新知识的神器。",
		URL:         "https://notebooklm.google.com",
	},
	{
		Source: "Kuaishou", Category: CategoryVideo, Title: "可灵 AI (Kling) 网页版上线",
		Description: "快手团队研发的‘可灵’视频生成大模型，被誉为中国版的 Sora。它支持生成长达 2 分钟的视频（需延长），并且在人物动作幅度、吞咽食物等物理模拟上表现惊人。现在网页版已面向全球用户开放，支持图生视频和文生视频。",
		URL:         "https://klingai.kuaishou.com",
	},
	{
		Source: "Midjourney", Category: CategoryApp, Title: "Midjourney 网页编辑器公测",
		Description: "Midjourney 终于摆脱了 Discord！全新的网页版编辑器上线，支持局部重绘（Inpainting）、画布扩展（Outpainting）以及通过拖拽来修改图片构图。这是一个巨大的交互飞跃，让不懂代码的设计师也能轻松使用顶级 AI 绘画。",
		URL:         "https://midjourney.com",
	},
	{
		Source: "Perplexity", Category: CategoryApp, Title: "Perplexity Pro 推出深度推理",
		Description: "AI 搜索引擎 Perplexity 引入了 o1 级别的推理模型。当你询问复杂的学术或分析类问题时，它会进行多步骤的深度搜索和逻辑链推导，最后给出一份引用详实、逻辑严密的专业报告，而非简单的搜索摘要。",
		URL:         "https://perplexity.ai",
	},
}

// Filler pads a news list from a fixed catalogue.
type Filler struct {
	catalogue []FillerEntry
	replicas  int
}

// NewFiller uses FillerCatalogue when catalogue is nil.
func NewFiller(catalogue []FillerEntry, replicas int) *Filler {
	if catalogue == nil {
		catalogue = FillerCatalogue
	}
	if replicas < 1 {
		replicas = 1
	}
	return &Filler{catalogue: catalogue, replicas: replicas}
}

// TopUp returns up to target new items whose titles are neither in seen nor
// among current. Added titles are recorded in seen, so repeated calls with the
// same set never add a title twice. stamp is the run's formatted timestamp.
func (f *Filler) TopUp(current []Item, seen SeenSet, target int, stamp string) []Item {
	if target <= 0 {
		return nil
	}
	for _, it := range current {
		seen.Add(it.Title)
	}

	var added []Item
	for r := 0; r < f.replicas && len(added) < target; r++ {
		for _, entry := range f.catalogue {
			if len(added) >= target {
				break
			}
			if !seen.Add(entry.Title) {
				continue
			}
			added = append(added, Item{
				Source:      entry.Source,
				Category:    entry.Category,
				Title:       entry.Title,
				Description: entry.Description,
				URL:         entry.URL,
				PublishedAt: stamp,
				Origin:      SourceFiller,
			})
		}
	}
	return added
}

// Remaining counts catalogue titles not yet in seen.
func (f *Filler) Remaining(seen SeenSet) int {
	n := 0
	counted := NewSeenSet()
	for _, entry := range f.catalogue {
		if !seen.Has(entry.Title) && counted.Add(entry.Title) {
			n++
		}
	}
	return n
}
