package news

// fallbackItems keep the feed populated when the bridge is unreachable.
var fallbackItems = []Item{
	{
		GUID:        "fallback-1",
		Title:       "OpenAI 发布 GPT-5 预览版：推理能力大幅提升",
		Link:        "https://openai.com/blog",
		Author:      "OpenAI",
		Thumbnail:   "https://images.unsplash.com/photo-1677442136019-21780ecad995?auto=format&fit=crop&q=80&w=1000",
		Description: "最新的模型展示了在数学和编程领域的突破性进展...",
	},
	{
		GUID:        "fallback-2",
		Title:       "Midjourney V7 更新：支持 3D 建模与视频生成",
		Link:        "https://www.midjourney.com",
		Author:      "Midjourney",
		Thumbnail:   "https://images.unsplash.com/photo-1579783902614-a3fb3927b6a5?auto=format&fit=crop&q=80&w=1000",
		Description: "生成的图像细节更加惊人，且新增了时间轴控制功能...",
	},
}
