package config

const ThortxConfigTemplate = `server_port = {{ .ServerPort }}
delegator_url = "{{ .DelegatorUrl }}"
delegator_key = "{{ .DelegatorKey }}"
mnemonic = "{{ .Mnemonic }}"

[db]
driver = "{{ .Db.Driver }}"
host = "{{ .Db.Host }}"
port = {{ .Db.Port }}
username = "{{ .Db.Username }}"
password = "{{ .Db.Password }}"
schema = "{{ .Db.Schema }}"
in_memory = {{ .Db.InMemory }}

[chain]
chain = "{{ .Chain.Chain }}"
node_url = "{{ .Chain.NodeUrl }}"
chain_tag = {{ .Chain.ChainTag }}
expiration = {{ .Chain.Expiration }}
poll_interval = {{ .Chain.PollInterval }}
max_fee_per_gas = "{{ .Chain.MaxFeePerGas }}"
max_priority_fee_per_gas = "{{ .Chain.MaxPriorityFeePerGas }}"
`
