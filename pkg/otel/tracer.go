package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ShutdownFunc 关闭追踪器并刷新未导出的 Span
type ShutdownFunc func(ctx context.Context) error

// InitTracer 初始化全局追踪器
//
// 使用 stdout 导出器，便于本地开发与测试环境观察 Span。
func InitTracer(serviceName string) (trace.Tracer, ShutdownFunc, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)

	return tp.Tracer(serviceName), tp.Shutdown, nil
}

// NoopTracer 返回空实现追踪器（追踪关闭时使用）
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer("")
}
