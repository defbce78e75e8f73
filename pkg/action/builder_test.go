package action

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/raywall/fast-action-client/pkg/descriptor"
	"github.com/raywall/fast-action-client/pkg/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2016, 2, 23, 12, 46, 24, 0, time.UTC)

const fixedNonce = "3ee8c1b8-83d3-44af-a94f-4e0ad82fd6cf"

func fixedBuilder() *Builder {
	return &Builder{
		Method: signature.HMACSHA1{},
		Clock:  func() time.Time { return fixedTime },
		Nonce:  func() string { return fixedNonce },
	}
}

type failingMethod struct{ signature.HMACSHA1 }

func (failingMethod) Generate(map[string]string, signature.Context) (string, error) {
	return "", errors.New("boom")
}

func TestBuilder_Build(t *testing.T) {
	svc := &descriptor.ServiceDefinition{Host: "ecs.example.com", Version: "2014-05-26"}
	def := &descriptor.ActionDefinition{Action: "DescribeRegions"}
	creds := Credentials{AccessKeyID: "testid", AccessKeySecret: "testsecret"}

	t.Run("Assinatura de referência", func(t *testing.T) {
		env, err := fixedBuilder().Build(def, nil, svc, creds, Defaults{})
		require.NoError(t, err)

		assert.Equal(t, "3jelCdBwsBF1FhNF5D/tsWfZFsY=", env[signature.SignatureKey])
		assert.Equal(t, "JSON", env[FieldFormat])
		assert.Equal(t, "2014-05-26", env[FieldVersion])
		assert.Equal(t, "DescribeRegions", env[FieldAction])
		assert.Equal(t, "testid", env[FieldAccessKeyID])
		assert.Equal(t, "2016-02-23T12:46:24Z", env[FieldTimestamp])
		assert.Equal(t, "HMAC-SHA1", env[FieldSignatureMethod])
		assert.Equal(t, "1.0", env[FieldSignatureVersion])
		assert.Equal(t, fixedNonce, env[FieldSignatureNonce])
		assert.True(t, env.Signed())
		assert.Len(t, env, 9)
	})

	t.Run("Envelope verifica com o segredo", func(t *testing.T) {
		env, err := NewBuilder(signature.HMACSHA1{}).Build(def, map[string]string{"RegionId": "cn-hangzhou"}, svc, creds, Defaults{})
		require.NoError(t, err)

		ok, err := signature.Verify(signature.HMACSHA1{}, env, signature.Context{HTTPMethod: "GET", AccessKeySecret: "testsecret"})
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = signature.Verify(signature.HMACSHA1{}, env, signature.Context{HTTPMethod: "GET", AccessKeySecret: "other"})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Campos padrão sobrescrevem wire", func(t *testing.T) {
		env, err := fixedBuilder().Build(def, map[string]string{"Action": "Hijack", "Signature": "forged", "RegionId": "x"}, svc, creds, Defaults{})
		require.NoError(t, err)
		assert.Equal(t, "DescribeRegions", env[FieldAction])
		assert.Equal(t, "x", env["RegionId"])
		assert.NotEqual(t, "forged", env[signature.SignatureKey])
	})

	t.Run("Formato do serviço e default global", func(t *testing.T) {
		env, err := fixedBuilder().Build(def, nil, svc, creds, Defaults{Format: "XML"})
		require.NoError(t, err)
		assert.Equal(t, "XML", env[FieldFormat])

		withFormat := *svc
		withFormat.Format = "JSON"
		env, err = fixedBuilder().Build(def, nil, &withFormat, creds, Defaults{Format: "XML"})
		require.NoError(t, err)
		assert.Equal(t, "JSON", env[FieldFormat])
	})

	t.Run("Nonce e timestamp novos a cada chamada", func(t *testing.T) {
		b := NewBuilder(signature.HMACSHA1{})
		a, err := b.Build(def, nil, svc, creds, Defaults{})
		require.NoError(t, err)
		c, err := b.Build(def, nil, svc, creds, Defaults{})
		require.NoError(t, err)
		assert.NotEqual(t, a[FieldSignatureNonce], c[FieldSignatureNonce])
		_, err = time.Parse(TimestampLayout, a[FieldTimestamp])
		assert.NoError(t, err)
	})

	t.Run("Timestamp sempre em UTC", func(t *testing.T) {
		b := fixedBuilder()
		b.Clock = func() time.Time { return fixedTime.In(time.FixedZone("BRT", -3*3600)) }
		env, err := b.Build(def, nil, svc, creds, Defaults{})
		require.NoError(t, err)
		assert.Equal(t, "2016-02-23T12:46:24Z", env[FieldTimestamp])
	})

	t.Run("Erros", func(t *testing.T) {
		_, err := (&Builder{}).Build(def, nil, svc, creds, Defaults{})
		assert.Error(t, err)

		_, err = fixedBuilder().Build(nil, nil, svc, creds, Defaults{})
		assert.Error(t, err)

		_, err = (&Builder{Method: failingMethod{}}).Build(def, nil, svc, creds, Defaults{})
		assert.ErrorContains(t, err, "boom")
	})
}

func TestEnvelope(t *testing.T) {
	env := Envelope{"b": "2", "a": "x y", "Signature": "s+/="}

	assert.Equal(t, "Signature=s%2B%2F%3D&a=x%20y&b=2", env.Encode())

	u, err := url.Parse(env.URL("https://ecs.example.com/"))
	require.NoError(t, err)
	assert.Equal(t, "/", u.Path)
	assert.Equal(t, "s+/=", u.Query().Get("Signature"))
	assert.True(t, strings.HasPrefix(env.URL("http://h"), "http://h/?"))

	clone := env.Clone()
	clone["a"] = "changed"
	assert.Equal(t, "x y", env["a"])

	assert.False(t, Envelope{}.Signed())
}
