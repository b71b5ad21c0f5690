// Package middleware 提供HTTP中间件：身份认证、存储注入、日志、指标、追踪、
// 限流、熔断与响应缓存.
package middleware
