package main

import "tapdlens/internal/llmclient"

// credentialsFromConfig copies the loaded config's LLM section into the
// shape llmclient.DetectProvider/Call expects.
func credentialsFromConfig() llmclient.Credentials {
	return llmclient.Credentials{
		SiliconFlowKey:      cfg.LLM.SiliconFlowKey,
		SiliconFlowEndpoint: cfg.LLM.SiliconFlowEndpoint,
		SiliconFlowModel:    cfg.LLM.SiliconFlowModel,
		DeepSeekKey:         cfg.LLM.DeepSeekKey,
		DeepSeekEndpoint:    cfg.LLM.DeepSeekEndpoint,
		DeepSeekModel:       cfg.LLM.DeepSeekModel,
	}
}
