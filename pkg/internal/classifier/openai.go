package classifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"github.com/tidyvault/tidyvault/pkg/configs"
	nlog "github.com/tidyvault/tidyvault/pkg/log"
)

const systemPrompt = `You organize a document vault. ` +
	`Given a list of file names, assign each file a short semantic folder name ` +
	`such as "Tax Documents" or "Tenant Records". ` +
	`Return a mapping that covers every file. Do not invent file names.`

// OpenAIClassifier 基于 OpenAI 兼容后端的分类网关.一次整理检查只发出一个
// 请求，包含全部文件名；后端失败或响应不可解析时返回 ErrGateway，由调用方
// 退回规则分类——网关自身不做重试.
type OpenAIClassifier struct {
	client  *openai.Client
	cfg     configs.ClassifierConfig
	parser  ResponseParser
	breaker *gobreaker.CircuitBreaker
}

// NewOpenAIClassifier 创建分类网关.cbCfg 启用时包一层熔断：
// 熔断打开期间 Classify 直接返回 ErrGateway，不再打到后端.
func NewOpenAIClassifier(cfg configs.ClassifierConfig, cbCfg configs.CircuitBreakerConfig) *OpenAIClassifier {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	c := &OpenAIClassifier{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
		parser: NewResponseParser(cfg.Mode),
	}

	if cbCfg.Enabled {
		settings := gobreaker.Settings{
			Name:        "classifier-backend",
			MaxRequests: cbCfg.MaxRequestsInHalf,
			Interval:    time.Duration(cbCfg.IntervalSeconds) * time.Second,
			Timeout:     time.Duration(cbCfg.TimeoutSeconds) * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				total := counts.Requests
				if total < cbCfg.MinRequests {
					return false
				}
				// 失败比例
				failureRate := float64(counts.TotalFailures) / float64(total)
				return failureRate >= cbCfg.FailureRate
			},
		}
		c.breaker = gobreaker.NewCircuitBreaker(settings)
	}

	return c
}

// Classify 提交全部展示名并解析返回的 name→folder 映射.
// 返回的映射可能只覆盖输入子集；完全失败时返回 ErrGateway.
func (o *OpenAIClassifier) Classify(ctx context.Context, names []string) (map[string]string, error) {
	if len(names) == 0 {
		return map[string]string{}, nil
	}

	cctx, cancel := context.WithTimeout(ctx, o.cfg.GetTimeoutDuration())
	defer cancel()

	body, err := o.complete(cctx, names)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	mapping := o.parser.Parse(body)
	if len(mapping) == 0 {
		return nil, fmt.Errorf("%w: response contained no usable mapping", ErrGateway)
	}

	nlog.Logger().Debug().Int("requested", len(names)).Int("mapped", len(mapping)).Msg("classifier response parsed")

	return mapping, nil
}

// complete 执行一次 chat completion，经过熔断器（若启用）.
func (o *OpenAIClassifier) complete(ctx context.Context, names []string) (string, error) {
	call := func() (any, error) {
		resp, err := o.client.CreateChatCompletion(ctx, o.buildRequest(names))
		if err != nil {
			return nil, err
		}

		if len(resp.Choices) == 0 {
			return nil, errors.New("empty completion response")
		}

		return resp.Choices[0].Message.Content, nil
	}

	var (
		res any
		err error
	)

	if o.breaker != nil {
		res, err = o.breaker.Execute(call)
	} else {
		res, err = call()
	}

	if err != nil {
		return "", err
	}

	body, _ := res.(string)

	return body, nil
}

// buildRequest 构造包含全部文件名的单个请求.
func (o *OpenAIClassifier) buildRequest(names []string) openai.ChatCompletionRequest {
	var sb strings.Builder

	if strings.EqualFold(o.cfg.Mode, "text") {
		sb.WriteString("Assign a folder to every file below. ")
		sb.WriteString("Answer with one line per file, exactly \"<file name>: <folder name>\", nothing else.\n\n")
	} else {
		sb.WriteString("Assign a folder to every file below. ")
		sb.WriteString("Answer with a single JSON object mapping each file name to its folder name.\n\n")
	}

	for _, name := range names {
		sb.WriteString(name)
		sb.WriteString("\n")
	}

	req := openai.ChatCompletionRequest{
		Model: o.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: sb.String()},
		},
		Temperature: o.cfg.Temperature,
		MaxTokens:   o.cfg.MaxTokens,
	}

	if !strings.EqualFold(o.cfg.Mode, "text") {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	return req
}
