package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand/v2"
)

// Tool is one static entry of a rank table.
type Tool struct {
	Name        string
	Description string
	URL         string
}

// RankEntry is a tool's position within its category.
type RankEntry struct {
	Rank        int    `json:"rank"`
	Name        string `json:"name"`
	Description string `json:"desc"`
	URL         string `json:"url"`
	Score       string `json:"score"`
}

// RankCategory is one named, ordered rank table.
type RankCategory struct {
	Name    string
	Entries []RankEntry
}

// Ranks marshals as a JSON object keyed by category name, in table order.
type Ranks []RankCategory

const (
	BaseScore   = 99.9
	RankPenalty = 0.5
	ScoreJitter = 0.1
)

type category struct {
	name  string
	tools []Tool
}

var categories = []category{
	{"LLM", llmTools},
	{"Image", imageTools},
	{"Video", videoTools},
	{"Dev", devTools},
}

// CategoryNames lists the rank tables in display order.
func CategoryNames() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.name
	}
	return names
}

// BuildRanks scores every table. Score i is BaseScore - i*RankPenalty plus
// uniform jitter in [-ScoreJitter, ScoreJitter], so neighbours may swap order.
// A nil rng uses the global source.
func BuildRanks(rng *rand.Rand) Ranks {
	float := rand.Float64
	if rng != nil {
		float = rng.Float64
	}

	ranks := make(Ranks, 0, len(categories))
	for _, c := range categories {
		entries := make([]RankEntry, len(c.tools))
		for i, tool := range c.tools {
			score := BaseScore - float64(i)*RankPenalty + (float()*2-1)*ScoreJitter
			entries[i] = RankEntry{
				Rank:        i + 1,
				Name:        tool.Name,
				Description: tool.Description,
				URL:         tool.URL,
				Score:       fmt.Sprintf("%.1f", score),
			}
		}
		ranks = append(ranks, RankCategory{Name: c.name, Entries: entries})
	}
	return ranks
}

// Get returns the entries of the named category, or nil.
func (r Ranks) Get(name string) []RankEntry {
	for _, c := range r {
		if c.Name == name {
			return c.Entries
		}
	}
	return nil
}

func (r Ranks) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, c := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(c.Name); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1) // Encode appends a newline
		buf.WriteByte(':')
		entries := c.Entries
		if entries == nil {
			entries = []RankEntry{}
		}
		if err := enc.Encode(entries); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var llmTools = []Tool{
	{"ChatGPT (GPT-4o)", "OpenAI 旗舰，综合能力全球第一，支持实时语音。", "https://chat.openai.com"},
	{"Claude 3.5 Sonnet", "代码编写与逻辑推理能力最强，UI 优雅。", "https://claude.ai"},
	{"DeepSeek-V3", "国产开源天花板，数学代码比肩 GPT-4。", "https://chat.deepseek.com"},
	{"Gemini 1.5 Pro", "Google 生态核心，超长上下文窗口。", "https://gemini.google.com"},
	{"Kimi 智能助手", "月之暗面出品，长文档分析首选，中文极佳。", "https://kimi.moonshot.cn"},
	{"Perplexity", "AI 搜索引擎，直接给出精准答案与引用。", "https://perplexity.ai"},
	{"Llama 3.1", "Meta 开源巨无霸，当前开源界的最强基石。", "https://llama.meta.com"},
	{"Qwen 2.5", "阿里出品，全能型开源模型，多语言能力卓越。", "https://tongyi.aliyun.com"},
	{"Mistral Large", "欧洲最强模型，逻辑严密，适合企业部署。", "https://mistral.ai"},
	{"Grok-2", "X (推特) 旗下，接入实时社交数据。", "https://x.ai"},
	{"Doubao", "字节跳动出品，响应极快，语音流畅。", "https://www.doubao.com"},
	{"GLM-4", "智谱 AI 旗舰，工具调用能力强。", "https://chatglm.cn"},
	{"Yi-Large", "零一万物出品，全球竞技场前列。", "https://lingyiwanwu.com"},
	{"MiniMax", "拟人交互最强，语气最像真人。", "https://minimaxi.com"},
	{"Command R+", "专为 RAG (检索增强) 设计的企业模型。", "https://cohere.com"},
	{"Copilot", "集成于 Office 的办公助手。", "https://copilot.microsoft.com"},
	{"HuggingChat", "免费使用多种开源模型。", "https://huggingface.co/chat"},
	{"Poe", "聚合所有主流大模型。", "https://poe.com"},
	{"Ernie", "国内知识库覆盖最全。", "https://yiyan.baidu.com"},
	{"Pi", "主打高情商陪伴聊天。", "https://pi.ai"},
}

var imageTools = []Tool{
	{"Midjourney v6", "艺术绘图王者，审美无可匹敌。", "https://midjourney.com"},
	{"Flux.1 Pro", "最强开源生图，手指/文字渲染极佳。", "https://blackforestlabs.ai"},
	{"Stable Diffusion", "本地部署必备，插件生态丰富。", "https://stability.ai"},
	{"DALL·E 3", "语义理解最强，集成于 GPT。", "https://openai.com/dall-e-3"},
	{"Civitai", "全球最大模型与 LoRA 下载站。", "https://civitai.com"},
	{"LiblibAI", "国内最大 AI 绘画社区。", "https://www.liblib.art"},
	{"Leonardo.ai", "专注游戏资产生成。", "https://leonardo.ai"},
	{"InstantID", "保持人脸一致性最好的项目。", "https://github.com/InstantID/InstantID"},
	{"Freepik AI", "实时绘图，设计师灵感库。", "https://www.freepik.com/ai"},
	{"Ideogram 2.0", "图片生成文字效果最好。", "https://ideogram.ai"},
	{"Krea AI", "实时画布，画哪里生成哪里。", "https://krea.ai"},
	{"Firefly", "版权合规，适合商业设计。", "https://firefly.adobe.com"},
	{"Magnific", "图片无损放大与细节增强。", "https://magnific.ai"},
	{"Tripo SR", "图片转 3D 模型。", "https://www.tripo3d.ai"},
	{"ControlNet", "SD 核心插件，精准控制构图。", "https://github.com/lllyasviel/ControlNet"},
	{"SeaArt", "体验接近原生 SD 的在线工具。", "https://www.seaart.ai"},
	{"Tensor.art", "在线运行模型，免费额度大。", "https://tensor.art"},
	{"Clipdrop", "移除背景/打光工具箱。", "https://clipdrop.co"},
	{"Stylar", "图层控制精准的设计工具。", "https://www.dzine.ai"},
	{"ComfyUI", "节点式工作流，探索上限。", "https://github.com/comfyanonymous/ComfyUI"},
}

var videoTools = []Tool{
	{"Runway Gen-3", "视频生成行业标准，运镜控制。", "https://runwayml.com"},
	{"Kling AI", "生成时长最长，物理模拟真实。", "https://klingai.kuaishou.com"},
	{"Luma Dream", "生成极快，免费额度大方。", "https://lumalabs.ai"},
	{"Hailuo", "视频动态幅度大，视觉冲击强。", "https://hailuoai.com/video"},
	{"Vidu", "一键生成，人物一致性好。", "https://www.vidu.studio"},
	{"Sora", "OpenAI 期货，定义行业上限。", "https://openai.com/sora"},
	{"HeyGen", "数字人播报王者，口型同步。", "https://www.heygen.com"},
	{"Pika Art", "动画风格，局部重绘功能。", "https://pika.art"},
	{"Hedra", "专注人物对话，表情细腻。", "https://www.hedra.com"},
	{"Viggle", "让静态角色跳舞。", "https://viggle.ai"},
	{"AnimateDiff", "让静态图动起来的 SD 插件。", "https://github.com/guoyww/AnimateDiff"},
	{"Suno", "音乐生成，顺带生成 MV。", "https://suno.com"},
	{"Udio", "音质更 Hi-Fi 的音乐 AI。", "https://www.udio.com"},
	{"ElevenLabs", "全球最强 AI 配音。", "https://elevenlabs.io"},
	{"Sync Labs", "专业口型同步。", "https://synclabs.so"},
	{"D-ID", "老牌照片说话工具。", "https://www.d-id.com"},
	{"Synthesia", "企业级数字人演示。", "https://www.synthesia.io"},
	{"Descript", "像编辑文档一样编辑视频。", "https://www.descript.com"},
	{"OpusClip", "长视频自动剪辑成短视频。", "https://www.opus.pro"},
	{"Kaiber", "风格化视频转绘。", "https://kaiber.ai"},
}

var devTools = []Tool{
	{"Cursor", "AI 原生编辑器，全库理解。", "https://cursor.com"},
	{"GitHub Copilot", "开发者必备代码补全。", "https://github.com/features/copilot"},
	{"v0.dev", "文字生成 React 界面。", "https://v0.dev"},
	{"Replit", "全自动构建 Web 应用。", "https://replit.com"},
	{"Hugging Face", "全球开源模型托管中心。", "https://huggingface.co"},
	{"LangChain", "LLM 应用开发框架。", "https://www.langchain.com"},
	{"Ollama", "本地运行大模型工具。", "https://ollama.com"},
	{"Supermaven", "超长记忆代码补全，速度快。", "https://supermaven.com"},
	{"Codeium", "免费强大的代码补全。", "https://codeium.com"},
	{"Devin", "全自动 AI 软件工程师。", "https://www.cognition-labs.com/devin"},
	{"Gradio", "Python 构建 AI 演示界面。", "https://www.gradio.app"},
	{"Streamlit", "数据仪表盘开发框架。", "https://streamlit.io"},
	{"Dify", "可视化 LLM 应用编排。", "https://dify.ai"},
	{"Coze", "零代码 AI Bot 搭建。", "https://www.coze.com"},
	{"Pinecone", "AI 向量数据库。", "https://www.pinecone.io"},
	{"Vercel", "前端托管，支持 AI 应用。", "https://vercel.com"},
	{"Tabnine", "私有化代码补全。", "https://www.tabnine.com"},
	{"Amazon Q", "AWS 开发者助手。", "https://aws.amazon.com/q/developer/"},
	{"W&B", "模型训练监控平台。", "https://wandb.ai"},
	{"LlamaIndex", "LLM 数据连接框架。", "https://www.llamaindex.ai"},
}
