package registry

// =============================================================================
// Default Provider Registry
// =============================================================================

// Defaults returns the built-in registry for the sample shop.
//
// Managed providers cover every backend: each dependency kind maps to the
// corresponding AWS service. In-cluster providers exist only for the EKS
// backends and run the dependency as a container next to the application.
// Endpoint and credential templates are expanded by the binder from static
// inputs (${node}, ${namespace}, ${region}, ${domain}).
func Defaults() *Registry {
	r := New()

	// Managed AWS dependencies, one set per backend.
	for _, backend := range AllBackends() {
		for _, p := range managedProviders(backend) {
			r.MustRegister(p)
		}
	}

	// In-cluster dependencies for the Kubernetes backends.
	for _, backend := range []Backend{BackendEKSDefault, BackendEKSMinimal} {
		for _, p := range inClusterProviders(backend) {
			r.MustRegister(p)
		}
	}

	// Shared ingress for the Kubernetes backends. eks-minimal keeps the
	// lighter controller.
	r.MustRegister(Provider{
		Name:        "ingress-alb-" + string(BackendEKSDefault),
		Kind:        KindIngress,
		Backend:     BackendEKSDefault,
		Mode:        ModeAny,
		Weight:      WeightInfrastructure,
		SharedInfra: true,
		Template: FactTemplate{
			Endpoint:      "${service}.${domain}",
			CredentialRef: "tls-${service}",
			Port:          443,
		},
	})
	r.MustRegister(Provider{
		Name:        "ingress-nginx-" + string(BackendEKSMinimal),
		Kind:        KindIngress,
		Backend:     BackendEKSMinimal,
		Mode:        ModeAny,
		Weight:      WeightInfrastructure,
		SharedInfra: true,
		Template: FactTemplate{
			Endpoint:      "${service}.${domain}",
			CredentialRef: "tls-${service}",
			Port:          443,
		},
	})

	return r
}

// managedProviders returns the externally managed AWS providers for one
// backend. Provider names carry the backend suffix so names stay unique
// across the registry.
func managedProviders(backend Backend) []Provider {
	suffix := "-" + string(backend)
	return []Provider{
		{
			Name:    "rds-mysql" + suffix,
			Kind:    KindRelationalStore,
			Backend: backend,
			Mode:    ModeManaged,
			Weight:  WeightStore,
			Template: FactTemplate{
				Endpoint:      "${node}.cluster.${region}.rds.amazonaws.com",
				CredentialRef: "rds/${node}",
				Port:          3306,
			},
		},
		{
			Name:    "dynamodb" + suffix,
			Kind:    KindDocumentStore,
			Backend: backend,
			Mode:    ModeManaged,
			Weight:  WeightStore,
			Template: FactTemplate{
				Endpoint:      "dynamodb.${region}.amazonaws.com",
				CredentialRef: "dynamodb/${node}",
				Port:          443,
			},
		},
		{
			Name:    "elasticache-redis" + suffix,
			Kind:    KindCache,
			Backend: backend,
			Mode:    ModeManaged,
			Weight:  WeightStore,
			Template: FactTemplate{
				Endpoint:      "${node}.cache.${region}.amazonaws.com",
				CredentialRef: "elasticache/${node}",
				Port:          6379,
			},
		},
		{
			Name:    "amazon-mq" + suffix,
			Kind:    KindQueue,
			Backend: backend,
			Mode:    ModeManaged,
			Weight:  WeightStore,
			Template: FactTemplate{
				Endpoint:      "${node}.mq.${region}.amazonaws.com",
				CredentialRef: "mq/${node}",
				Port:          5671,
			},
		},
	}
}

// inClusterProviders returns the containerized providers for one Kubernetes
// backend. Endpoints follow cluster-local DNS naming.
func inClusterProviders(backend Backend) []Provider {
	suffix := "-" + string(backend)
	return []Provider{
		{
			Name:    "mysql" + suffix,
			Kind:    KindRelationalStore,
			Backend: backend,
			Mode:    ModeInCluster,
			Weight:  WeightStore,
			Template: FactTemplate{
				Endpoint:      "${node}.${namespace}.svc.cluster.local",
				CredentialRef: "${node}-credentials",
				Port:          3306,
			},
		},
		{
			Name:    "mongodb" + suffix,
			Kind:    KindDocumentStore,
			Backend: backend,
			Mode:    ModeInCluster,
			Weight:  WeightStore,
			Template: FactTemplate{
				Endpoint:      "${node}.${namespace}.svc.cluster.local",
				CredentialRef: "${node}-credentials",
				Port:          27017,
			},
		},
		{
			Name:    "redis" + suffix,
			Kind:    KindCache,
			Backend: backend,
			Mode:    ModeInCluster,
			Weight:  WeightStore,
			Template: FactTemplate{
				Endpoint:      "${node}.${namespace}.svc.cluster.local",
				CredentialRef: "${node}-credentials",
				Port:          6379,
			},
		},
		{
			Name:    "rabbitmq" + suffix,
			Kind:    KindQueue,
			Backend: backend,
			Mode:    ModeInCluster,
			Weight:  WeightStore,
			Template: FactTemplate{
				Endpoint:      "${node}.${namespace}.svc.cluster.local",
				CredentialRef: "${node}-credentials",
				Port:          5672,
			},
		},
	}
}
