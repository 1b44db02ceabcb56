package catalog

import (
	"github.com/RustWorks/webadmin/pkg/schema"
)

// DNS challenge providers selectable for the DNS-01 challenge.
var dnsProviders = []schema.Option{
	{Value: "rfc2136-tsig", Label: "RFC2136"},
	{Value: "cloudflare", Label: "Cloudflare"},
}

var acmeChallenges = []schema.Option{
	{Value: "tls-alpn-01", Label: "TLS-ALPN-01"},
	{Value: "dns-01", Label: "DNS-01"},
	{Value: "http-01", Label: "HTTP-01"},
}

var tsigAlgorithms = []schema.Option{
	{Value: "hmac-md5", Label: "HMAC-MD5"},
	{Value: "gss", Label: "GSS"},
	{Value: "hmac-sha1", Label: "HMAC-SHA1"},
	{Value: "hmac-sha224", Label: "HMAC-SHA224"},
	{Value: "hmac-sha256", Label: "HMAC-SHA256"},
	{Value: "hmac-sha256-128", Label: "HMAC-SHA256-128"},
	{Value: "hmac-sha384", Label: "HMAC-SHA384"},
	{Value: "hmac-sha384-192", Label: "HMAC-SHA384-192"},
	{Value: "hmac-sha512", Label: "HMAC-SHA512"},
	{Value: "hmac-sha512-256", Label: "HMAC-SHA512-256"},
}

// TLSProtocols lists the protocol versions that can be disabled per listener
// or server-wide.
var TLSProtocols = []schema.Option{
	{Value: "TLSv1.2", Label: "TLS version 1.2"},
	{Value: "TLSv1.3", Label: "TLS version 1.3"},
}

// TLSCiphersuites lists the ciphersuites that can be disabled per listener
// or server-wide.
var TLSCiphersuites = []schema.Option{
	{Value: "TLS13_AES_256_GCM_SHA384", Label: "TLS1.3 AES256 GCM SHA384"},
	{Value: "TLS13_AES_128_GCM_SHA256", Label: "TLS1.3 AES128 GCM SHA256"},
	{Value: "TLS13_CHACHA20_POLY1305_SHA256", Label: "TLS1.3 CHACHA20 POLY1305 SHA256"},
	{Value: "TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384", Label: "ECDHE ECDSA AES256 GCM SHA384"},
	{Value: "TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256", Label: "ECDHE ECDSA AES128 GCM SHA256"},
	{Value: "TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256", Label: "ECDHE ECDSA CHACHA20 POLY1305 SHA256"},
	{Value: "TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384", Label: "ECDHE RSA AES256 GCM SHA384"},
	{Value: "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256", Label: "ECDHE RSA AES128 GCM SHA256"},
	{Value: "TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256", Label: "ECDHE RSA CHACHA20 POLY1305 SHA256"},
}

// buildTLS declares the acme, certificate, and tls schemas.
func buildTLS(b *schema.RegistryBuilder) *schema.RegistryBuilder {
	return buildACME(b).
		Schema("certificate").
		ReloadPrefix("certificate").
		Names("certificate", "certificates").
		Prefix("certificate").
		Suffix("cert").
		IDField().
		Label("Certificate Id").
		Help("Unique identifier for the TLS certificate").
		Done().
		Field("default").
		Type(schema.TypeBoolean).
		Label("Default certificate").
		Help("Whether this certificate should be the default when no SNI is provided").
		Done().
		Field("cert").
		Label("Certificate").
		Type(schema.TypeText).
		Help("TLS certificate in PEM format").
		Transform(schema.Trim).
		Validate(schema.Required).
		Done().
		Field("private-key").
		Label("Private Key").
		Type(schema.TypeText).
		Help("Private key in PEM format").
		Transform(schema.Trim).
		Validate(schema.Required).
		Done().
		Field("subjects").
		Type(schema.TypeArray).
		Transform(schema.Trim).
		Validate(schema.IsDomain).
		Label("Subject Alternative Names").
		Help("Subject Alternative Names (SAN) for the certificate").
		Done().
		ListTitle("TLS certificates").
		ListSubtitle("Manage TLS certificates").
		ListFields(schema.IDFieldName, "subjects", "default").
		Section("TLS certificate").
		Fields(schema.IDFieldName, "cert", "private-key", "subjects", "default").
		Done().
		Done().
		Schema("tls").
		Apply(addTLSFields(false)).
		Section("Default TLS options").
		Fields(
			"server.tls.disable-protocols",
			"server.tls.disable-ciphers",
			"server.tls.timeout",
			"server.tls.ignore-client-order",
		).
		Done().
		Done()
}

func buildACME(b *schema.RegistryBuilder) *schema.RegistryBuilder {
	return b.Schema("acme").
		Names("ACME provider", "ACME providers").
		Prefix("acme").
		Suffix("directory").
		IDField().
		Label("Directory Id").
		Help("Unique identifier for the ACME provider").
		Done().
		Field("directory").
		Label("Directory URL").
		Help("The URL of the ACME directory endpoint").
		Type(schema.TypeInput).
		Transform(schema.Trim).
		Validate(schema.Required, schema.IsURL).
		Default("https://acme-v02.api.letsencrypt.org/directory").
		Done().
		Field("domains").
		Type(schema.TypeArray).
		Transform(schema.Trim).
		Validate(schema.Required).
		Label("Subject names").
		Help("Hostnames covered by this ACME manager").
		Done().
		Field("default").
		Type(schema.TypeBoolean).
		Label("Default provider").
		Help("Whether the certificates generated by this provider should be the default when no SNI is provided").
		Done().
		Field("contact").
		Label("Contact Email").
		Help("the contact email address, which is used for important communications regarding your ACME account and certificates").
		Type(schema.TypeArray).
		Transform(schema.Trim).
		Validate(schema.Required, schema.IsEmail).
		Done().
		Field("renew-before").
		Type(schema.TypeDuration).
		Label("Renew before").
		Help("Determines how early before expiration the certificate should be renewed.").
		Validate(schema.Required).
		Default("30d").
		Done().
		Field("challenge").
		Type(schema.SelectOne(acmeChallenges...)).
		Label("Challenge type").
		Help("The ACME challenge type used to validate domain ownership").
		Validate(schema.Required).
		Default("tls-alpn-01").
		Done().
		Field("polling-interval").
		Type(schema.TypeDuration).
		Label("Polling interval").
		Help("How often to check for DNS records to propagate").
		DisplayIfEq("challenge", "dns-01").
		Validate(schema.Required).
		Default("15s").
		Done().
		Field("propagation-timeout").
		Type(schema.TypeDuration).
		Label("Propagation timeout").
		Help("How long to wait for DNS records to propagate").
		DisplayIfEq("challenge", "dns-01").
		Validate(schema.Required).
		Default("1m").
		Done().
		Field("ttl").
		Type(schema.TypeDuration).
		Label("TTL").
		Help("The TTL for the DNS record used in the DNS-01 challenge").
		DisplayIfEq("challenge", "dns-01").
		Validate(schema.Required).
		Default("5m").
		Done().
		Field("provider").
		Type(schema.SelectOne(dnsProviders...)).
		Label("DNS Provider").
		Help("The DNS provider used to manage DNS records for the DNS-01 challenge").
		Validate(schema.Required).
		Default("rfc2136-tsig").
		DisplayIfEq("challenge", "dns-01").
		Done().
		Field("secret").
		Type(schema.TypeSecret).
		Label("Secret").
		Help("The TSIG secret or token used to authenticate with the DNS provider").
		Validate(schema.Required).
		DisplayIfEq("challenge", "dns-01").
		Done().
		Field("timeout").
		Type(schema.TypeDuration).
		Label("Timeout").
		Help("Request timeout for the DNS provider").
		DisplayIfEq("provider", "cloudflare").
		Validate(schema.Required).
		Default("30s").
		Done().
		Field("tsig-algorithm").
		Type(schema.SelectOne(tsigAlgorithms...)).
		Label("TSIG Algorithm").
		Help("The TSIG algorithm used to authenticate with the DNS provider").
		Validate(schema.Required).
		Default("hmac-sha512").
		DisplayIfEq("provider", "rfc2136-tsig").
		Done().
		Field("protocol").
		Type(schema.SelectOne(
			schema.Option{Value: "udp", Label: "UDP"},
			schema.Option{Value: "tcp", Label: "TCP"},
		)).
		Label("Protocol").
		Help("The protocol used to communicate with the DNS server").
		Default("udp").
		DisplayIfEq("challenge", "dns-01").
		Done().
		Field("port").
		Type(schema.TypeInput).
		Label("Port").
		Help("The port used to communicate with the DNS server").
		Transform(schema.Trim).
		Validate(schema.Required, schema.IsPort).
		Default("53").
		DisplayIfEq("challenge", "dns-01").
		Done().
		Field("host").
		Label("Host").
		Help("The IP address of the DNS server").
		Placeholder("127.0.0.1").
		Transform(schema.Trim).
		Validate(schema.Required, schema.IsIPOrMask).
		DisplayIfEq("challenge", "dns-01").
		Done().
		Field("key").
		Label("Key").
		Help("The TSIG key used to authenticate with the DNS provider").
		Transform(schema.Trim).
		Validate(schema.Required).
		DisplayIfEq("challenge", "dns-01").
		Done().
		Field("account-key").
		Label("Account key").
		Help("The account key used to authenticate with the ACME provider (auto-generated)").
		Type(schema.TypeSecret).
		Done().
		Field("cert").
		Label("TLS Certificate").
		Help("The TLS certificate generated by the ACME provider (auto-generated, do not modify)").
		Type(schema.TypeSecret).
		Done().
		ListTitle("ACME providers").
		ListSubtitle("Manage ACME TLS certificate providers").
		ListFields(schema.IDFieldName, "contact", "renew-before", "default").
		Section("ACME provider").
		Fields(
			schema.IDFieldName,
			"directory",
			"challenge",
			"contact",
			"domains",
			"renew-before",
			"default",
		).
		Done().
		Section("DNS settings").
		DisplayIfEq("challenge", "dns-01").
		Fields(
			"provider",
			"host",
			"port",
			"protocol",
			"tsig-algorithm",
			"key",
			"secret",
			"polling-interval",
			"propagation-timeout",
			"ttl",
			"timeout",
		).
		Done().
		Section("Certificate").
		Fields("account-key", "cert").
		Done().
		Done()
}

// addTLSFields declares the TLS tuning fields shared by the server-wide tls
// schema and per-listener schemas. Listener schemas scope the ids under
// "tls." and gate them on the listener's override toggle; the server-wide
// schema uses "server.tls." ids with no gate.
func addTLSFields(isListener bool) func(*schema.SchemaBuilder) *schema.SchemaBuilder {
	prefix := "server.tls."
	var override []string
	if isListener {
		prefix = "tls."
		override = []string{"true"}
	}
	return func(sb *schema.SchemaBuilder) *schema.SchemaBuilder {
		return sb.
			Field(prefix+"ignore-client-order").
			Label("Ignore client order").
			Help("Whether to ignore the client's cipher order").
			Type(schema.TypeBoolean).
			Default("true").
			DisplayIfEq("tls.override", override...).
			Done().
			Field(prefix+"timeout").
			Label("Handshake Timeout").
			Help("TLS handshake timeout").
			Type(schema.TypeDuration).
			Default("1m").
			DisplayIfEq("tls.override", override...).
			Done().
			Field(prefix+"disable-protocols").
			Label("Disabled Protocols").
			Help("Which TLS protocols to disable").
			Type(schema.SelectMany(TLSProtocols...)).
			DisplayIfEq("tls.override", override...).
			Done().
			Field(prefix+"disable-ciphers").
			Label("Disabled Ciphersuites").
			Help("Which ciphersuites to disable").
			Type(schema.SelectMany(TLSCiphersuites...)).
			DisplayIfEq("tls.override", override...).
			Done()
	}
}
