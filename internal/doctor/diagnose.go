package doctor

import (
	"context"

	"github.com/harshul/noderunner/internal/nodes"
)

// VariantReport is the launch decision for one jar type in a home.
type VariantReport struct {
	Variant nodes.Variant
	JarName string
	Reason  nodes.SkipReason
}

// HomeReport lists the launch decisions for one node home.
type HomeReport struct {
	Name     string
	Dir      string
	Variants []VariantReport
}

// Launchable counts the variants that would start.
func (r HomeReport) Launchable() int {
	n := 0
	for _, v := range r.Variants {
		if v.Reason == nodes.NotSkipped {
			n++
		}
	}
	return n
}

// Diagnosis contains the full health check results
type Diagnosis struct {
	WorkDir     string
	Environment Environment
	Runtime     RuntimeStatus
	Homes       []HomeReport
	Healthy     bool
	Issues      []string
}

// Diagnose probes the host and reports what a launch from workDir would start.
func Diagnose(ctx context.Context, p *Prober, workDir, javaPath string, headlessFlag bool) (Diagnosis, error) {
	diagnosis := Diagnosis{
		WorkDir:     workDir,
		Environment: p.Probe(ctx, headlessFlag),
		Runtime:     CheckJavaRuntime(javaPath),
		Healthy:     true,
		Issues:      []string{},
	}

	homes, err := nodes.Scan(workDir)
	if err != nil {
		return diagnosis, err
	}

	launchable := 0
	for _, home := range homes {
		report := HomeReport{Name: home.Name, Dir: home.Dir}
		for _, jt := range nodes.JarTypes {
			report.Variants = append(report.Variants, VariantReport{
				Variant: jt.Variant,
				JarName: jt.JarName,
				Reason:  nodes.Check(home, jt),
			})
		}
		launchable += report.Launchable()
		diagnosis.Homes = append(diagnosis.Homes, report)
	}

	if !diagnosis.Runtime.Installed {
		diagnosis.Healthy = false
		diagnosis.Issues = append(diagnosis.Issues, diagnosis.Runtime.Name+" runtime is not installed")
	}
	if launchable == 0 {
		diagnosis.Healthy = false
		diagnosis.Issues = append(diagnosis.Issues, "no node homes with a launchable jar")
	}

	return diagnosis, nil
}
