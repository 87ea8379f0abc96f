package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"gopkg.in/yaml.v3"

	"github.com/storekit/storeplan/internal/core/registry"
)

// =============================================================================
// Compose Import
// =============================================================================

// backingImages maps well-known container images to the dependency kind they
// implement. A compose service running one of these images is folded into a
// dependency declaration on its dependents instead of becoming a ServiceSpec.
var backingImages = map[string]registry.DependencyKind{
	"mysql":          registry.KindRelationalStore,
	"mariadb":        registry.KindRelationalStore,
	"postgres":       registry.KindRelationalStore,
	"mongo":          registry.KindDocumentStore,
	"mongodb":        registry.KindDocumentStore,
	"dynamodb-local": registry.KindDocumentStore,
	"redis":          registry.KindCache,
	"valkey":         registry.KindCache,
	"memcached":      registry.KindCache,
	"rabbitmq":       registry.KindQueue,
	"activemq":       registry.KindQueue,
}

// ImportCompose derives a service catalog from a docker-compose document.
//
// Compose services running a known backing-store image (mysql, redis, ...)
// become dependency declarations on the services that depend_on them;
// everything else becomes a ServiceSpec. A service with published ports is
// treated as externally routable. The result passes the same validation as a
// hand-written catalog.
func ImportCompose(yamlContent string) ([]ServiceSpec, error) {
	if strings.TrimSpace(yamlContent) == "" {
		return nil, NewCatalogError("", "", "compose document is empty", ErrEmptyInput)
	}

	project, err := loadComposeProject(yamlContent)
	if err != nil {
		return nil, err
	}

	// First pass: classify compose services into backing stores and
	// application services.
	stores := make(map[string]registry.DependencyKind)
	var apps []types.ServiceConfig
	for _, svc := range project.Services {
		if kind, ok := backingImages[imageBase(svc.Image)]; ok {
			stores[svc.Name] = kind
			continue
		}
		apps = append(apps, svc)
	}
	if len(apps) == 0 {
		return nil, NewCatalogError("", "", "compose document declares no application services", ErrNoServices)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].Name < apps[j].Name })

	// Second pass: turn depends_on edges onto backing stores into
	// dependency declarations.
	specs := make([]ServiceSpec, 0, len(apps))
	for _, svc := range apps {
		spec := ServiceSpec{
			Name:     svc.Name,
			Exposure: ExposureInternal,
		}
		if len(svc.Ports) > 0 {
			spec.Exposure = ExposureExternal
		}

		kinds := make(map[registry.DependencyKind]bool)
		names := make([]string, 0, len(svc.DependsOn))
		for dep := range svc.DependsOn {
			names = append(names, dep)
		}
		sort.Strings(names)
		for _, dep := range names {
			kind, ok := stores[dep]
			if !ok {
				// Plain service-to-service startup ordering; the
				// resolver wires only backing dependencies.
				continue
			}
			if kinds[kind] {
				continue
			}
			kinds[kind] = true
			spec.Required = append(spec.Required, DependencyRef{Kind: kind, Access: AccessWrite})
		}
		specs = append(specs, spec)
	}

	return Validate(specs)
}

// loadComposeProject parses a compose document in-memory via compose-go.
func loadComposeProject(yamlContent string) (*types.Project, error) {
	var dict map[string]interface{}
	if err := yaml.Unmarshal([]byte(yamlContent), &dict); err != nil || dict == nil {
		return nil, NewCatalogError("", "", "invalid compose YAML", ErrInvalidYAML)
	}

	project, err := loader.LoadWithContext(context.Background(), types.ConfigDetails{
		ConfigFiles: []types.ConfigFile{
			{Content: []byte(yamlContent), Config: dict},
		},
	}, func(opts *loader.Options) {
		opts.SetProjectName("storeplan-import", false)
		opts.SkipValidation = false
		opts.SkipInterpolation = false
		opts.SkipNormalization = true
		opts.SkipExtends = true
	})
	if err != nil {
		return nil, NewCatalogError("", "", fmt.Sprintf("compose parse failed: %v", err), ErrInvalidYAML)
	}
	return project, nil
}

// imageBase strips the registry path and tag from an image reference:
// "public.ecr.aws/docker/library/mysql:8.0" -> "mysql".
func imageBase(image string) string {
	if image == "" {
		return ""
	}
	base := image
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.Index(base, ":"); i >= 0 {
		base = base[:i]
	}
	return base
}
