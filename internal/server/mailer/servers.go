package mailer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// ServerList is the YAML SMTP configuration:
//
//	from: "Accounts <noreply@example.com>"
//	sender: noreply@example.com
//	replyTo: [support@example.com]
//	servers:
//	  - host: smtp.example.com
//	    port: "587"
//	    connections: 4
//	    sendTimeout: 10
//	    auth:
//	      user: mailer
//	      password: secret
type ServerList struct {
	Servers []Server `yaml:"servers"`
	From    string   `yaml:"from"`
	Sender  string   `yaml:"sender"`
	ReplyTo []string `yaml:"replyTo"`
}

type Server struct {
	Host               string `yaml:"host"`
	Port               string `yaml:"port"`
	Connections        int    `yaml:"connections"`
	InsecureSkipVerify bool   `yaml:"insecureSkipVerify"`
	AuthData           struct {
		Username string `yaml:"user"`
		Password string `yaml:"password"`
	} `yaml:"auth"`
	SendTimeout int `yaml:"sendTimeout"`
}

// Address is host:port.
func (s *Server) Address() string {
	return s.Host + ":" + s.Port
}

// ReadServerList parses the YAML file at fname. Unknown keys are rejected.
func ReadServerList(fname string) (ServerList, error) {
	var sl ServerList

	b, err := os.ReadFile(fname)
	if err != nil {
		return sl, fmt.Errorf("read smtp config %s: %w", fname, err)
	}
	if err := yaml.UnmarshalStrict(b, &sl); err != nil {
		return sl, fmt.Errorf("parse smtp config %s: %w", fname, err)
	}
	if len(sl.Servers) == 0 {
		return sl, fmt.Errorf("smtp config %s: no servers defined", fname)
	}
	return sl, nil
}
