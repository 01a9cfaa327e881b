// Package testutil provides fixture builders for testing retrogen
// components against realistic Java project trees.
//
// All fixtures are created under t.TempDir() so every test is isolated
// and cleaned up automatically.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SampleRestClientConfig is a minimal RestClientConfig.java with one
// existing client bean, matching the shape the patcher expects.
const SampleRestClientConfig = `package com.example.app.config;

import com.example.app.client.rest.api.OrderApi;
import org.springframework.context.annotation.Bean;
import org.springframework.context.annotation.Configuration;

@Configuration
public class RestClientConfig {

  @Bean
  public OrderApi orderApi(RetrofitFactory retrofitFactory) {
    return retrofitFactory.forService("order-api").create(OrderApi.class);
  }
}
`

// SampleEndpointsConfig is a minimal EndpointsConfig.java with one
// existing endpoint bean.
const SampleEndpointsConfig = `package com.example.app.config.endpoints;

import org.springframework.context.annotation.Bean;
import org.springframework.context.annotation.Configuration;

@Configuration
public class EndpointsConfig {

  @Bean
  public Endpoint orderEndpoint(
      @Value("${http-client.order-api.base-url}") String baseUrl) {
    return Endpoint.builder().serviceId("order-api").baseUrl(baseUrl).build();
  }
}
`

// SamplePom is a minimal Maven pom with a dependencies section.
const SamplePom = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
    <modelVersion>4.0.0</modelVersion>
    <groupId>com.example</groupId>
    <artifactId>demo</artifactId>
    <version>0.0.1-SNAPSHOT</version>
    <dependencies>
        <dependency>
            <groupId>org.springframework.boot</groupId>
            <artifactId>spring-boot-starter-web</artifactId>
        </dependency>
    </dependencies>
</project>
`

// ProjectOption customizes MakeJavaProject fixtures.
type ProjectOption func(*projectSpec)

type projectSpec struct {
	restConfig  bool
	endpoints   bool
	yamlContent *string
	pomContent  *string
}

// WithoutConfigFiles omits RestClientConfig.java and EndpointsConfig.java.
func WithoutConfigFiles() ProjectOption {
	return func(s *projectSpec) {
		s.restConfig = false
		s.endpoints = false
	}
}

// WithYAML sets the application-local.yml content ("" for an empty file).
func WithYAML(content string) ProjectOption {
	return func(s *projectSpec) { s.yamlContent = &content }
}

// WithPom sets the pom.xml content.
func WithPom(content string) ProjectOption {
	return func(s *projectSpec) { s.pomContent = &content }
}

// MakeJavaProject creates a conventional Spring Boot project tree with
// the given base package (dotted) and a client marker directory, and
// returns the project root.
func MakeJavaProject(t *testing.T, basePackage string, opts ...ProjectOption) string {
	t.Helper()

	spec := &projectSpec{
		restConfig: true,
		endpoints:  true,
	}
	for _, opt := range opts {
		opt(spec)
	}

	root := t.TempDir()
	pkgDir := filepath.Join(root, "src", "main", "java", filepath.FromSlash(strings.ReplaceAll(basePackage, ".", "/")))

	MustMkdirAll(t, filepath.Join(pkgDir, "client"))
	MustMkdirAll(t, filepath.Join(root, "src", "main", "resources"))

	if spec.restConfig {
		MustWriteFile(t, filepath.Join(pkgDir, "config", "RestClientConfig.java"), SampleRestClientConfig)
	}
	if spec.endpoints {
		MustWriteFile(t, filepath.Join(pkgDir, "config", "endpoints", "EndpointsConfig.java"), SampleEndpointsConfig)
	}

	yamlContent := ""
	if spec.yamlContent != nil {
		yamlContent = *spec.yamlContent
	}
	MustWriteFile(t, filepath.Join(root, "src", "main", "resources", "application-local.yml"), yamlContent)

	pomContent := SamplePom
	if spec.pomContent != nil {
		pomContent = *spec.pomContent
	}
	MustWriteFile(t, filepath.Join(root, "pom.xml"), pomContent)

	return root
}

// MustMkdirAll creates a directory tree or fails the test.
func MustMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

// MustWriteFile writes a file (creating parents) or fails the test.
func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	MustMkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// MustReadFile reads a file or fails the test.
func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
