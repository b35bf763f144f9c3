package config

import (
	"bytes"
	"os"
	"text/template"
)

const ConfigTemplate = `transactions_file = "{{ .TransactionsFile }}"
log_level = "{{ .LogLevel }}"
transfer_recipient_parts = {{ .TransferRecipientParts }}
sync_cooldown_ms = {{ .SyncCooldownMs }}

db_host = "{{ .DbHost }}"
db_port = {{ .DbPort }}
db_username = "{{ .DbUsername }}"
db_password = "{{ .DbPassword }}"
db_schema = "{{ .DbSchema }}"

[chains]{{ range $k, $v := .Chains }}
	[chains.{{ $k }}]
	chain = "{{ $k }}"
	chain_id = {{ $v.ChainId }}
	rpc_url = "{{ $v.RpcUrl }}"
	node_url = "{{ $v.NodeUrl }}"
	platform = "{{ $v.Platform }}"
	native_coin = "{{ $v.NativeCoin }}"
{{ end }}
`

// WriteSample renders a starter config file with the built-in defaults so an
// operator has something to edit on first run.
func WriteSample(path string) error {
	cfg := &Config{}
	cfg.ApplyDefaults()

	tmpl, err := template.New("config").Parse(ConfigTemplate)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	if err := tmpl.Execute(buf, cfg); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0600)
}
