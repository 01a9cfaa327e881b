package patch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retrokit/retrogen/pkg/report"
)

const restClientConfig = `package com.example.app.config;

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

const importSnippet = `import com.example.app.client.rest.api.UserServiceApi;`

const beanSnippet = `
  @Bean
  public UserServiceApi userServiceApi(RetrofitFactory retrofitFactory) {
    return retrofitFactory.forService("user-service-api").create(UserServiceApi.class);
  }
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func defaultEntries() []Entry {
	return []Entry{
		{Label: "import", Snippet: importSnippet, PresentMarker: importSnippet, Anchor: ImportAnchor},
		{Label: "bean", Snippet: beanSnippet, PresentMarker: "userServiceApi(", Anchor: BeanAnchor},
	}
}

func TestApplyInsertsImportAndBean(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "RestClientConfig.java", restClientConfig)

	rep := &report.Report{}
	Apply(Options{
		DefaultPath: path,
		SearchRoot:  dir,
		FileName:    "RestClientConfig.java",
		Entries:     defaultEntries(),
	}, rep)

	assert.Equal(t, 2, rep.Count(report.StatusCreated))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	// import inserted after the last existing import
	assert.Contains(t, content,
		"import org.springframework.context.annotation.Configuration;\nimport com.example.app.client.rest.api.UserServiceApi;")

	// bean inserted after the last existing bean
	orderIdx := strings.Index(content, "orderApi(")
	userIdx := strings.Index(content, "userServiceApi(")
	assert.Greater(t, userIdx, orderIdx)

	// every original line is preserved
	for _, line := range strings.Split(restClientConfig, "\n") {
		assert.Contains(t, content, line)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "RestClientConfig.java", restClientConfig)

	opts := Options{DefaultPath: path, SearchRoot: dir, FileName: "RestClientConfig.java", Entries: defaultEntries()}

	Apply(opts, &report.Report{})
	after1, err := os.ReadFile(path)
	require.NoError(t, err)

	rep := &report.Report{}
	Apply(opts, rep)
	after2, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(after1), string(after2))
	assert.Equal(t, 0, rep.Count(report.StatusCreated))
	assert.Equal(t, 2, rep.Count(report.StatusSkipped))
	for _, o := range rep.Outcomes {
		assert.Equal(t, "already present", o.Reason)
	}
}

func TestApplyBeanFallbackBeforeClosingBrace(t *testing.T) {
	noBeans := `package com.example.app.config;

import org.springframework.context.annotation.Configuration;

@Configuration
public class EndpointsConfig {

  private final String unused = "x";
  }
}
`
	dir := t.TempDir()
	path := writeConfig(t, dir, "EndpointsConfig.java", noBeans)

	rep := &report.Report{}
	Apply(Options{
		DefaultPath: path,
		SearchRoot:  dir,
		FileName:    "EndpointsConfig.java",
		Entries: []Entry{
			{Label: "bean", Snippet: beanSnippet, PresentMarker: "userServiceApi(", Anchor: BeanAnchor},
		},
	}, rep)

	assert.Equal(t, 1, rep.Count(report.StatusCreated))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	userIdx := strings.Index(content, "userServiceApi(")
	braceIdx := strings.LastIndex(content, "}")
	assert.Greater(t, braceIdx, userIdx, "bean must land before the class closing brace")
}

func TestApplyEndpointsAnchorPackagePrivateBean(t *testing.T) {
	endpointsConfig := `package com.example.app.config;

import org.springframework.context.annotation.Bean;
import org.springframework.context.annotation.Configuration;

@Configuration
public class EndpointsConfig {

  @Bean
  Endpoint orderEndpoint(@Value("${http-client.order-api.base-url}") String baseUrl) {
    return new Endpoint(baseUrl);
  }
}
`
	endpointSnippet := `
  @Bean
  Endpoint userServiceEndpoint(@Value("${http-client.user-service-api.base-url}") String baseUrl) {
    return new Endpoint(baseUrl);
  }
`
	dir := t.TempDir()
	path := writeConfig(t, dir, "EndpointsConfig.java", endpointsConfig)

	rep := &report.Report{}
	Apply(Options{
		DefaultPath: path,
		SearchRoot:  dir,
		FileName:    "EndpointsConfig.java",
		Entries: []Entry{
			{Label: "bean", Snippet: endpointSnippet, PresentMarker: "userServiceEndpoint(", Anchor: EndpointsBeanAnchor},
		},
	}, rep)

	assert.Equal(t, 1, rep.Count(report.StatusCreated))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	// the new bean anchors after the existing package-private bean, not at
	// the closing-brace fallback
	orderIdx := strings.Index(content, "orderEndpoint(")
	userIdx := strings.Index(content, "userServiceEndpoint(")
	assert.Greater(t, userIdx, orderIdx)
	for _, line := range strings.Split(endpointsConfig, "\n") {
		assert.Contains(t, content, line)
	}
}

func TestApplyPreservesCRLF(t *testing.T) {
	crlfConfig := strings.ReplaceAll(restClientConfig, "\n", "\r\n")
	dir := t.TempDir()
	path := writeConfig(t, dir, "RestClientConfig.java", crlfConfig)

	rep := &report.Report{}
	Apply(Options{
		DefaultPath: path,
		SearchRoot:  dir,
		FileName:    "RestClientConfig.java",
		Entries: []Entry{
			{Label: "import", Snippet: importSnippet, PresentMarker: importSnippet, Anchor: ImportAnchor},
		},
	}, rep)

	assert.Equal(t, 1, rep.Count(report.StatusCreated))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	// inserted after the last import, with the new line CRLF-terminated
	assert.Contains(t, content,
		"import org.springframework.context.annotation.Configuration;\r\n"+importSnippet+"\r\n")
	assert.NotContains(t, strings.ReplaceAll(content, "\r\n", ""), "\n",
		"every line must stay CRLF-terminated")

	// every original byte sequence survives per line
	for _, line := range strings.Split(crlfConfig, "\r\n") {
		assert.Contains(t, content, line)
	}
}

func TestApplyAnchorNotFound(t *testing.T) {
	malformed := "// not a java class at all\n"
	dir := t.TempDir()
	path := writeConfig(t, dir, "RestClientConfig.java", malformed)

	rep := &report.Report{}
	Apply(Options{
		DefaultPath: path,
		SearchRoot:  dir,
		FileName:    "RestClientConfig.java",
		Entries: []Entry{
			{Label: "bean", Snippet: beanSnippet, PresentMarker: "userServiceApi(", Anchor: BeanAnchor},
		},
	}, rep)

	require.Len(t, rep.Outcomes, 1)
	assert.Equal(t, report.StatusWarned, rep.Outcomes[0].Status)
	assert.Equal(t, "insertion point not found", rep.Outcomes[0].Reason)

	// file untouched
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, malformed, string(data))
}

func TestApplyMissingFileWarns(t *testing.T) {
	dir := t.TempDir()

	rep := &report.Report{}
	Apply(Options{
		DefaultPath: filepath.Join(dir, "config", "RestClientConfig.java"),
		SearchRoot:  dir,
		FileName:    "RestClientConfig.java",
		Entries:     defaultEntries(),
	}, rep)

	require.Len(t, rep.Outcomes, 1)
	assert.Equal(t, report.StatusWarned, rep.Outcomes[0].Status)
	assert.Equal(t, "not found in project", rep.Outcomes[0].Reason)
}

func TestApplyFindsFileByRecursiveSearch(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "src", "main", "java", "com", "example", "config")
	require.NoError(t, os.MkdirAll(nested, 0755))
	path := writeConfig(t, nested, "RestClientConfig.java", restClientConfig)

	rep := &report.Report{}
	Apply(Options{
		DefaultPath: filepath.Join(dir, "wrong", "RestClientConfig.java"),
		SearchRoot:  dir,
		FileName:    "RestClientConfig.java",
		Entries:     defaultEntries(),
	}, rep)

	assert.Equal(t, 2, rep.Count(report.StatusCreated))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "userServiceApi(")
}
