package utils

import "fmt"

var BuildVersion string
var BuildRelease string

func GetLabVersion() string {
	if BuildRelease == "" {
		return fmt.Sprintf("git-%v", BuildVersion)
	}

	return fmt.Sprintf("%v (git-%v)", BuildRelease, BuildVersion)
}
