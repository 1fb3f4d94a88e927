// Package conf reads the YAML configuration file shared by the api server
// and batch commands.
package conf

import (
	"io"
	"os"

	"gopkg.in/yaml.v2"
)

type Conf struct {
	Model               string `yaml:"model"`
	BeamSize            int    `yaml:"beam"`
	TopK                int    `yaml:"topk"`
	NumThreads          int    `yaml:"threads"`
	IntegrateAllomorphs *bool  `yaml:"integrate_allomorphs"`
	NormalizeNFC        bool   `yaml:"normalize_nfc"`
	Addr                string `yaml:"addr"`
}

func Read(reader io.Reader) (*Conf, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	retval := &Conf{}
	if err := yaml.Unmarshal(data, retval); err != nil {
		return nil, err
	}
	return retval, nil
}

func ReadFile(filename string) (*Conf, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file)
}
